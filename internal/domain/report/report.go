// Package report computes the weekly per-mechanic rollup.
package report

import (
	"sort"
	"time"

	"github.com/busshop-tracker/internal/domain/entry"
	"github.com/busshop-tracker/internal/timeutil"
)

// RiskLowActivity flags a mechanic whose week falls below the static
// activity thresholds.
const RiskLowActivity = "Low activity"

// Activity thresholds: a mechanic is flagged when hours < 30 or entries < 3.
const (
	minWeeklyHours   = 30.0
	minWeeklyEntries = 3
)

// Row is one mechanic's weekly rollup.
type Row struct {
	Mechanic string  `json:"mechanic"`
	Entries  int     `json:"entries"`
	Hours    float64 `json:"hours"`
	Parts    float64 `json:"parts"`
	Risk     string  `json:"risk"`
}

// Weekly is the full weekly report: the canonical week bounds and one row per
// mechanic with in-range entries, sorted by hours descending.
type Weekly struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Rows  []Row  `json:"rows"`
}

// WeekBounds returns the canonical [start, end] of the week containing now:
// Monday 00:00:00.000 through Sunday 23:59:59.999 in local wall-clock time.
func WeekBounds(now time.Time) (string, string) {
	return timeutil.Canonical(timeutil.StartOfWeek(now)), timeutil.Canonical(timeutil.EndOfWeek(now))
}

// Build aggregates the given entries into per-mechanic rows: entry count,
// summed duration hours, and summed parts cost (quantity times unit cost).
// Rows are sorted by hours descending; ties keep first-seen order. Numeric
// contributions are already clamped at decode time, so a bad parts line on
// one entry never aborts the rest.
func Build(entries []*entry.Entry) []Row {
	index := make(map[string]int)
	rows := make([]Row, 0, len(entries))

	for _, e := range entries {
		i, seen := index[e.Mechanic]
		if !seen {
			i = len(rows)
			index[e.Mechanic] = i
			rows = append(rows, Row{Mechanic: e.Mechanic})
		}
		rows[i].Entries++
		rows[i].Hours += e.DurationHours
		rows[i].Parts += e.PartsCost()
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Hours > rows[b].Hours
	})

	for i := range rows {
		rows[i].Risk = riskFlag(rows[i].Hours, rows[i].Entries)
	}

	return rows
}

func riskFlag(hours float64, entries int) string {
	if hours < minWeeklyHours || entries < minWeeklyEntries {
		return RiskLowActivity
	}
	return ""
}
