package metadata

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate parses a metadata date value in any of the commonly written
// layouts. Values are stored verbatim, so generators call this lazily when
// they need a specific output format.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
