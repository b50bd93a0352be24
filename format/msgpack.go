package format

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes documents using vmihailenco/msgpack/v5.
// The zero value is ready to use. Integers come back at their encoded width
// (int8, uint16, ...), which the codec's field decoder accepts.
type Msgpack struct{}

var _ Format = Msgpack{}

func (Msgpack) ID() byte     { return IDMsgpack }
func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Marshal(doc map[string]any) ([]byte, error) {
	return msgpack.Marshal(doc)
}
func (Msgpack) Unmarshal(b []byte) (map[string]any, error) {
	var m map[string]any
	err := msgpack.Unmarshal(b, &m)
	return object(m, err)
}
