package zap

import (
	"sort"

	"github.com/unkn0wn-root/taskcodec"
	"go.uber.org/zap"
)

var _ taskcodec.Logger = ZapLogger{}

// ZapLogger adapts *zap.Logger. Fields are emitted in key order so log lines
// for the same event are stable.
type ZapLogger struct{ L *zap.Logger }

// New names the logger "taskcodec" under l.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("taskcodec")} }

func (z ZapLogger) Debug(msg string, f taskcodec.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f taskcodec.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f taskcodec.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f taskcodec.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f taskcodec.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
