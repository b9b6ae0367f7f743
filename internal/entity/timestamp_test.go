package entity

import (
	"testing"
	"time"
)

func TestParseTimestamp_RoundTrip(t *testing.T) {
	inputs := []string{
		"2016-02-18T03:22:56.637Z",
		"2020-01-01T00:00:00Z",
		"1999-12-31T23:59:59.999999999Z",
	}

	for _, raw := range inputs {
		ts, err := ParseTimestamp(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}

		again, err := ParseTimestamp(ts.Wire())
		if err != nil {
			t.Fatalf("re-parse %q: %v", ts.Wire(), err)
		}
		if !again.Equal(ts.Time) {
			t.Errorf("round trip of %q: got %v, want %v", raw, again.Time, ts.Time)
		}
	}
}

func TestParseTimestamp_Offset(t *testing.T) {
	ts, err := ParseTimestamp("2016-02-18T03:22:56+01:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2016, 2, 18, 2, 22, 56, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("got %v, want %v", ts.Time, want)
	}
}

func TestParseTimestamp_Malformed(t *testing.T) {
	for _, raw := range []string{"not-a-date", "", "2016-02-18", "1455765776"} {
		if _, err := ParseTimestamp(raw); err == nil {
			t.Errorf("parse %q: expected error", raw)
		}
	}
}
