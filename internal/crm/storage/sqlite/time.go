package sqlite

import (
	"fmt"
	"time"
)

// timeLayout is how timestamps are stored: RFC3339 UTC, whole seconds.
// Fixed-width UTC strings compare lexicographically, so the inclusive
// created_at / order_date range filters work with plain >= and <=.
const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
