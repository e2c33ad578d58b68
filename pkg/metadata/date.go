package metadata

import (
	"fmt"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD form used for lastUpdated and purchase dates.
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func Today() string {
	return FormatDate(time.Now())
}

// ParseDate reads a canonical date. Values carrying a time part (RFC 3339) are accepted
// and truncated to their UTC day.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return StartOfDay(t), nil
}

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
