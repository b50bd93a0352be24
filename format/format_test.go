package format

import (
	"bytes"
	"errors"
	"testing"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"type":        "ping",
		"target_host": "www.google.com",
		"count":       int64(3),
		"key":         nil,
		"hops":        []any{"a", "b"},
		"via":         map[string]any{"port": int64(443)},
	}
}

func allFormats() []Format {
	return []Format{JSON{}, Msgpack{}, MustCBOR(false), MustCBOR(true), Struct{}}
}

func TestRoundTripKeepsShape(t *testing.T) {
	for _, f := range allFormats() {
		b, err := f.Marshal(sampleDoc())
		if err != nil {
			t.Fatalf("%s marshal: %v", f.Name(), err)
		}
		got, err := f.Unmarshal(b)
		if err != nil {
			t.Fatalf("%s unmarshal: %v", f.Name(), err)
		}
		if got["type"] != "ping" || got["target_host"] != "www.google.com" {
			t.Fatalf("%s strings=%v", f.Name(), got)
		}
		if v, ok := got["key"]; !ok || v != nil {
			t.Fatalf("%s explicit null lost: %v", f.Name(), got)
		}
		if hops, ok := got["hops"].([]any); !ok || len(hops) != 2 {
			t.Fatalf("%s hops=%#v", f.Name(), got["hops"])
		}
		if _, ok := got["via"].(map[string]any); !ok {
			t.Fatalf("%s nested doc=%#v", f.Name(), got["via"])
		}
	}
}

func TestIDsAreDistinct(t *testing.T) {
	seen := map[byte]string{}
	for _, f := range []Format{JSON{}, Msgpack{}, MustCBOR(false), Struct{}} {
		if prev, ok := seen[f.ID()]; ok {
			t.Fatalf("%s and %s share id %d", prev, f.Name(), f.ID())
		}
		seen[f.ID()] = f.Name()
	}
}

func TestNonObjectIsRejected(t *testing.T) {
	if _, err := (JSON{}).Unmarshal([]byte(`null`)); !errors.Is(err, ErrNotObject) {
		t.Fatalf("json null err=%v", err)
	}
	if _, err := (JSON{}).Unmarshal([]byte(`[1,2]`)); err == nil {
		t.Fatalf("json array should fail")
	}
	nilMsg, _ := Msgpack{}.Marshal(nil)
	if _, err := (Msgpack{}).Unmarshal(nilMsg); !errors.Is(err, ErrNotObject) {
		t.Fatalf("msgpack nil err=%v", err)
	}
}

func TestDeterministicCBORIsStable(t *testing.T) {
	c := MustCBOR(true)
	a, err := c.Marshal(sampleDoc())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		b, _ := c.Marshal(sampleDoc())
		if !bytes.Equal(a, b) {
			t.Fatalf("deterministic CBOR differs on run %d", i)
		}
	}
}

func TestLimit(t *testing.T) {
	l := Limit{Inner: JSON{}, MaxDecode: 16}
	if l.ID() != IDJSON || l.Name() != "json" {
		t.Fatalf("identity not forwarded: %d %s", l.ID(), l.Name())
	}
	if _, err := l.Unmarshal([]byte(`{"type":"ping"}`)); err != nil {
		t.Fatalf("small payload: %v", err)
	}
	big := []byte(`{"type":"traceroute"}`)
	_, err := l.Unmarshal(big)
	var tl *TooLargeError
	if !errors.As(err, &tl) || tl.Size != len(big) || tl.Limit != 16 {
		t.Fatalf("err=%v", err)
	}
	if _, err := (Limit{Inner: JSON{}}).Unmarshal(big); err != nil {
		t.Fatalf("zero limit should be unlimited: %v", err)
	}
}
