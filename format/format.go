// Package format turns encoded task documents into bytes and back.
//
// A document is the generic object form produced by the codec: map[string]any
// whose values are nil, bool, numbers, string, []any or nested documents.
// Every Format must accept that shape on Marshal and return it on Unmarshal;
// numeric widths may change across a round trip (e.g. JSON yields float64).
package format

import "errors"

// IDs are stable and persisted by the task store; never renumber.
const (
	IDJSON    byte = 1
	IDMsgpack byte = 2
	IDCBOR    byte = 3
	IDStruct  byte = 4
)

var ErrNotObject = errors.New("format: top-level value is not an object")

// Format encodes/decodes documents to []byte.
type Format interface {
	ID() byte
	Name() string
	Marshal(doc map[string]any) ([]byte, error)
	Unmarshal(b []byte) (map[string]any, error)
}

func object(m map[string]any, err error) (map[string]any, error) {
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotObject
	}
	return m, nil
}
