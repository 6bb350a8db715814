package derive

import (
	"strings"
	"time"
)

// Layouts of the year:day-of-year date strings used by the command archive,
// most precise first
var dateLayouts = []string{
	"2006:002:15:04:05.000",
	"2006:002:15:04:05",
	"2006:002:15:04",
	"2006:002",
}

// InOpenInterval reports whether lo < date < hi by string comparison.
// The archive date format is fixed width, so string order is time order.
func InOpenInterval(date, lo, hi string) bool {
	return date > lo && date < hi
}

// ParseDate parses a year:day-of-year date into UTC.
// Returns nil if the string is empty or does not match a known layout.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}

// RenderCalendarDate formats a year:day-of-year date as YYYY-MM-DD HH:MM.
// Unparseable input is returned unchanged.
func RenderCalendarDate(raw string) string {
	t := ParseDate(raw)
	if t == nil {
		return raw
	}
	return t.Format("2006-01-02 15:04")
}
