package entity

import (
	"time"
)

// Timestamp is a point in time parsed from the API's ISO-8601 wire format.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses an ISO-8601 string as sent by the server
// (e.g. "2016-02-18T03:22:56.637Z"). There is no fallback value: a
// malformed string is an error and the caller must fail the whole
// entity it was decoding.
func ParseTimestamp(raw string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{Time: t}, nil
}

// Wire renders the timestamp back into the wire format it was parsed from.
func (ts Timestamp) Wire() string {
	return ts.UTC().Format(time.RFC3339Nano)
}

// Display renders the timestamp the way article metadata shows it.
func (ts Timestamp) Display() string {
	return ts.Format("January 2, 2006")
}
