package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/taskcodec"
)

var _ taskcodec.Logger = LogrusLogger{}

// LogrusLogger adapts a *logrus.Entry; nil E falls back to the standard logger.
type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) entry(f taskcodec.Fields) *logrus.Entry {
	e := l.E
	if e == nil {
		e = logrus.NewEntry(logrus.StandardLogger())
	}
	if len(f) == 0 {
		return e
	}
	return e.WithFields(logrus.Fields(f))
}

func (l LogrusLogger) Debug(msg string, f taskcodec.Fields) { l.entry(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f taskcodec.Fields)  { l.entry(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f taskcodec.Fields)  { l.entry(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f taskcodec.Fields) { l.entry(f).Error(msg) }
