package utils

import "time"

// DateLayout is the display layout for dates in blocks, e.g. "Sep 28, 2026".
const DateLayout = "Jan 2, 2006"

// FormatDate formats t with DateLayout in UTC. The zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// FormatISODate formats t as "2006-01-02" in UTC, for <time datetime>.
func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
