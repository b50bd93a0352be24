package format

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR serializes documents using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when stored bytes must be stable, e.g. for content hashing.
// Nested maps always decode as map[string]any.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Format = CBOR{}

func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (CBOR) ID() byte     { return IDCBOR }
func (CBOR) Name() string { return "cbor" }

func (c CBOR) Marshal(doc map[string]any) ([]byte, error) {
	return c.enc.Marshal(doc)
}

func (c CBOR) Unmarshal(b []byte) (map[string]any, error) {
	var m map[string]any
	err := c.dec.Unmarshal(b, &m)
	return object(m, err)
}
