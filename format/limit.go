package format

import "fmt"

// TooLargeError is returned by Limit when a payload exceeds MaxDecode.
type TooLargeError struct {
	Size, Limit int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("payload too large: %d > %d", e.Size, e.Limit)
}

// Limit wraps another Format to enforce a maximum payload size at Unmarshal
// time. Marshal and identity are forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
//
// Typical use: protect against oversized task lists pushed by a server.
type Limit struct {
	// Inner is the underlying format being wrapped. It must be set.
	Inner Format
	// MaxDecode is the maximum permitted payload length in bytes.
	MaxDecode int
}

var _ Format = Limit{}

func (l Limit) ID() byte     { return l.Inner.ID() }
func (l Limit) Name() string { return l.Inner.Name() }

func (l Limit) Marshal(doc map[string]any) ([]byte, error) { return l.Inner.Marshal(doc) }
func (l Limit) Unmarshal(b []byte) (map[string]any, error) {
	if l.MaxDecode > 0 && len(b) > l.MaxDecode {
		return nil, &TooLargeError{Size: len(b), Limit: l.MaxDecode}
	}
	return l.Inner.Unmarshal(b)
}
