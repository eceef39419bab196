package timefmt

import (
	"testing"
)

func intPtr(v int) *int { return &v }

func TestToInstant_FullTimestamp(t *testing.T) {
	instant := ToInstant("2026-09-01T14:30:00")
	if instant == nil {
		t.Fatalf("expected full timestamp to parse, got nil")
	}
	if got := FormatClock(instant); got != "14:30" {
		t.Errorf("expected clock 14:30, got %s", got)
	}
}

func TestToInstant_BareClockMatchesFullTimestamp(t *testing.T) {
	// A static timetable's "14:30:00" and a live trip's full timestamp must
	// display as the same wall-clock reading.
	fromClock := ToInstant("14:30:00")
	fromStamp := ToInstant("2026-09-01T14:30:00")

	if fromClock == nil || fromStamp == nil {
		t.Fatalf("expected both encodings to parse, got %v / %v", fromClock, fromStamp)
	}

	if FormatClock(fromClock) != FormatClock(fromStamp) {
		t.Errorf("expected identical clock display, got %s vs %s",
			FormatClock(fromClock), FormatClock(fromStamp))
	}
	if FormatClock(fromClock) != "14:30" {
		t.Errorf("expected 14:30, got %s", FormatClock(fromClock))
	}
}

func TestToInstant_RFC3339WithZone(t *testing.T) {
	instant := ToInstant("2026-09-01T06:30:00+05:30")
	if instant == nil {
		t.Fatalf("expected RFC3339 timestamp to parse, got nil")
	}
	if got := FormatClock(instant); got != "06:30" {
		t.Errorf("expected clock 06:30, got %s", got)
	}
}

func TestToInstant_Garbage(t *testing.T) {
	cases := []string{"", "not-a-time", "99:99:99", "??:??"}
	for _, raw := range cases {
		if got := ToInstant(raw); got != nil {
			t.Errorf("expected nil for %q, got %v", raw, got)
		}
	}
}

func TestFormatClockString_FallsBackToRaw(t *testing.T) {
	// A single malformed timestamp must not abort a whole result render;
	// the raw text comes back instead of an error.
	if got := FormatClockString("cancelled"); got != "cancelled" {
		t.Errorf("expected raw fallback 'cancelled', got %s", got)
	}
	if got := FormatClockString(""); got != "N/A" {
		t.Errorf("expected N/A for empty input, got %s", got)
	}
	if got := FormatClockString("06:15:00"); got != "06:15" {
		t.Errorf("expected 06:15, got %s", got)
	}
}

func TestFormatClock_Nil(t *testing.T) {
	if got := FormatClock(nil); got != "N/A" {
		t.Errorf("expected N/A for nil instant, got %s", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name    string
		minutes *int
		want    string
	}{
		{"missing", nil, "N/A"},
		{"zero", intPtr(0), "N/A"},
		{"negative", intPtr(-15), "N/A"},
		{"under an hour", intPtr(45), "45m"},
		{"over an hour", intPtr(65), "1h 5m"},
		{"exact hours", intPtr(120), "2h 0m"},
		{"long haul", intPtr(195), "3h 15m"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.minutes); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
