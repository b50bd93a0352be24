package slog

import (
	"bytes"
	"encoding/json"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/taskcodec"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewJSONHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))}

	l.Warn("decode rejected", taskcodec.Fields{"tag": "ping", "kind": "unknown_variant"})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if rec["level"] != "WARN" || rec["msg"] != "decode rejected" || rec["tag"] != "ping" || rec["kind"] != "unknown_variant" {
		t.Fatalf("record=%v", rec)
	}
}

func TestSlogLoggerFieldOrderIsStable(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, nil))}

	l.Info("stored", taskcodec.Fields{"tag": "ping", "err": "none", "kind": "x", "field": "count"})

	line := buf.String()
	prev := -1
	for _, k := range []string{"err=", "field=", "kind=", "tag="} {
		i := strings.Index(line, k)
		if i < 0 || i < prev {
			t.Fatalf("fields out of order in %q", line)
		}
		prev = i
	}
}
