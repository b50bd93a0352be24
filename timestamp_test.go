package taskcodec

import (
	"errors"
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2011, 9, 1, 12, 30, 45, 123_000_000, time.UTC),
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2038, 1, 19, 3, 14, 7, 999_000_000, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 1_000_000, time.FixedZone("PST", -8*3600)),
	}
	for _, want := range cases {
		got, err := ParseTimestamp(FormatTimestamp(want))
		if err != nil {
			t.Fatalf("ParseTimestamp: %v", err)
		}
		if !got.Equal(want) {
			t.Fatalf("round trip %v -> %v", want, got)
		}
		if got.Location() != time.UTC {
			t.Fatalf("parsed location %v, want UTC", got.Location())
		}
	}
}

func TestTimestampIgnoresHostZone(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("EST", -5*3600)
	defer func() { time.Local = prev }()

	ts := time.Date(2011, 9, 1, 7, 0, 0, 500_000_000, time.Local)
	if got := FormatTimestamp(ts); got != "2011-09-01T12:00:00.500Z" {
		t.Fatalf("FormatTimestamp=%q", got)
	}
	got, err := ParseTimestamp("2011-09-01T12:00:00.500Z")
	if err != nil || !got.Equal(ts) {
		t.Fatalf("ParseTimestamp=%v,%v", got, err)
	}
}

func TestFormatTimestampTruncates(t *testing.T) {
	ts := time.Date(2011, 9, 1, 0, 0, 0, 123_999_999, time.UTC)
	if got := FormatTimestamp(ts); got != "2011-09-01T00:00:00.123Z" {
		t.Fatalf("FormatTimestamp=%q", got)
	}
}

func TestParseTimestampRejects(t *testing.T) {
	bad := []string{
		"",
		"2011-09-01",
		"2011-09-01T12:00:00Z",
		"2011-09-01T12:00:00.000",
		"2011-09-01T12:00:00.000+00:00",
		"2011-09-01 12:00:00.000Z",
		"2011-13-01T12:00:00.000Z",
	}
	for _, s := range bad {
		_, err := ParseTimestamp(s)
		if !errors.Is(err, ErrBadTimestamp) {
			t.Fatalf("ParseTimestamp(%q) err=%v", s, err)
		}
		var te *TimestampError
		if !errors.As(err, &te) || te.Text != s {
			t.Fatalf("ParseTimestamp(%q) not a TimestampError: %v", s, err)
		}
	}
}
