package format

import "github.com/goccy/go-json"

// JSON is the default document format. The zero value is ready to use.
// Numbers decode as float64.
type JSON struct{}

var _ Format = JSON{}

func (JSON) ID() byte     { return IDJSON }
func (JSON) Name() string { return "json" }

func (JSON) Marshal(doc map[string]any) ([]byte, error) {
	return json.Marshal(doc)
}

func (JSON) Unmarshal(b []byte) (map[string]any, error) {
	var m map[string]any
	err := json.Unmarshal(b, &m)
	return object(m, err)
}
