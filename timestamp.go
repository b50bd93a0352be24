package taskcodec

import (
	"fmt"
	"time"
)

// TimestampLayout is the wire form of every date field: UTC, millisecond
// precision, literal Z suffix (yyyy-MM-dd'T'HH:mm:ss.SSS'Z').
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// TimestampError reports a string that does not match TimestampLayout.
type TimestampError struct {
	Text string
	Err  error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("cannot convert UTC time string %q: %v", e.Text, e.Err)
}

func (e *TimestampError) Unwrap() []error { return []error{ErrBadTimestamp, e.Err} }

// FormatTimestamp renders t in UTC. Sub-millisecond precision is truncated.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp. The result is in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, &TimestampError{Text: s, Err: err}
	}
	return t.UTC(), nil
}
