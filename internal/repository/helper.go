package repository

import (
	"fmt"
	"time"
)

// timeLayouts are the formats timestamp columns come back in: SQLite's
// CURRENT_TIMESTAMP, bare dates, and RFC3339 values written by application code.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// ParseTime parses a date or datetime string in any of the supported layouts.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, str); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}
