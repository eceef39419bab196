// Package timefmt normalizes the mixed time encodings the Busmate backend
// returns: full timestamps on live trip records, bare HH:MM:SS clock readings
// on static timetables, and minute counts for durations. Everything here is
// pure formatting; a malformed input never escapes as an error or panic.
package timefmt

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order for full-timestamp parsing
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// clockLayouts handle bare local-time strings
var clockLayouts = []string{
	"15:04:05",
	"15:04",
}

// ToInstant parses a raw backend time string. Full timestamps are tried
// first; if none is a real date, the first 5 characters are read as an HH:MM
// clock on a reference date so the value still formats correctly. Returns nil
// for empty or unparseable input.
func ToInstant(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	// Clock readings sometimes carry fractional seconds; retry on HH:MM alone
	if len(raw) > 5 {
		if t, err := time.Parse("15:04", raw[:5]); err == nil {
			return &t
		}
	}

	return nil
}

// FormatClock renders an instant as a 24h wall-clock reading.
// A nil instant renders as "N/A".
func FormatClock(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("15:04")
}

// FormatClockString is the tolerant one-shot form: parse then format,
// falling back to the raw input when it cannot be read as a time at all.
func FormatClockString(raw string) string {
	if raw == "" {
		return "N/A"
	}
	if t := ToInstant(raw); t != nil {
		return FormatClock(t)
	}
	return raw
}

// FormatDuration renders a minute count as "{h}h {m}m", or "{m}m" under an
// hour. Missing, zero, and negative counts all render as "N/A" rather than a
// misleading "0m".
func FormatDuration(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return "N/A"
	}

	h := *minutes / 60
	m := *minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
