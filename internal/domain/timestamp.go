package domain

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Scrapers write ISO-8601 with either
// a "T" or a space separator, with or without seconds.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 date or datetime as stored by the scrapers.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// HumanDateTime renders a stored timestamp as "Jan 02, 2006 03:04 PM",
// falling back to the raw value when it does not parse.
func HumanDateTime(raw string) string {
	t, err := ParseTimestamp(raw)
	if err != nil {
		return raw
	}
	return t.Format("Jan 02, 2006 03:04 PM")
}
