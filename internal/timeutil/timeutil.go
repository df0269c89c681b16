// Package timeutil normalizes date-like input into a canonical, sortable
// timestamp form and provides the wall-clock week arithmetic used by reporting.
package timeutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CanonicalLayout is the canonical timestamp form: UTC, millisecond precision,
// lexicographically sortable.
const CanonicalLayout = "2006-01-02T15:04:05.000Z07:00"

// layouts accepted by Normalize, tried in order. Zoneless layouts are
// interpreted in the host's local time.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 3:04 PM",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.ANSIC,
}

// Canonical formats an instant in the canonical timestamp form.
func Canonical(t time.Time) string {
	return t.UTC().Format(CanonicalLayout)
}

// Parse resolves raw date-like text to an absolute instant. The second return
// value reports whether the input was parseable; an unparseable value is not
// an error.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize converts raw date-like text into the canonical timestamp form.
// Returns ok=false when the input is unparseable.
func Normalize(raw string) (string, bool) {
	t, ok := Parse(raw)
	if !ok {
		return "", false
	}
	return Canonical(t), true
}

// HoursBetween returns the elapsed hours from a to b. Invalid, missing, or
// non-positive spans are clamped to zero.
func HoursBetween(a, b string) float64 {
	ta, okA := Parse(a)
	tb, okB := Parse(b)
	if !okA || !okB || !tb.After(ta) {
		return 0
	}
	return tb.Sub(ta).Hours()
}

// ParseHours parses a free-text numeric hour value. Non-numeric or negative
// input defaults to zero; the zero fallback is intended behavior, not a
// swallowed error.
func ParseHours(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// StartOfWeek returns Monday 00:00:00.000 of the week containing t, in t's
// location.
func StartOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -daysSinceMonday)
}

// EndOfWeek returns Sunday 23:59:59.999 of the week containing t, in t's
// location.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Millisecond)
}
