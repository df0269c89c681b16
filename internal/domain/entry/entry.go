// Package entry defines the work-order record, its derivation rules, and the
// role-scoped query filter.
package entry

import (
	"strconv"
	"strings"
	"time"

	"github.com/busshop-tracker/internal/timeutil"
	"github.com/google/uuid"
)

// Part is one parts line on a work order: what was used, how many, and the
// unit cost.
type Part struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"qty"`
	UnitCost    float64 `json:"unit"`
}

// Entry represents one logged maintenance action by a mechanic on a bus.
// Date and DurationHours are derived fields; they are recomputed from
// StartTime/EndTime/LaborHours on every write and never trusted from callers.
type Entry struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	Mechanic      string   `json:"mechanic"`
	Bus           string   `json:"bus"`
	ServiceType   string   `json:"serviceType"`
	Odometer      string   `json:"odometer"`
	LaborHours    string   `json:"laborHours"`
	Notes         string   `json:"notes"`
	Photos        []string `json:"photos"`
	Parts         []Part   `json:"parts"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	DurationHours float64  `json:"durationHours"`
}

// NewID generates an entry identifier: millisecond timestamp in base 36 plus
// a random suffix.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + suffix
}

// Derive recomputes the derived fields from the raw time inputs, normalizing
// StartTime and EndTime to canonical form along the way. Date becomes the
// normalized start time when present, otherwise the supplied write instant.
// DurationHours is the elapsed span when both times resolve, otherwise the
// parsed LaborHours value, with unparseable or negative input clamped to 0.
func (e *Entry) Derive(now time.Time) {
	startISO, startOK := timeutil.Normalize(e.StartTime)
	endISO, endOK := timeutil.Normalize(e.EndTime)

	if startOK {
		e.StartTime = startISO
	} else {
		e.StartTime = ""
	}
	if endOK {
		e.EndTime = endISO
	} else {
		e.EndTime = ""
	}

	if startOK {
		e.Date = startISO
	} else {
		e.Date = timeutil.Canonical(now)
	}

	if startOK && endOK {
		e.DurationHours = timeutil.HoursBetween(startISO, endISO)
	} else {
		e.DurationHours = timeutil.ParseHours(e.LaborHours)
	}
}

// PartsCost sums quantity times unit cost across all parts lines.
func (e *Entry) PartsCost() float64 {
	var total float64
	for _, p := range e.Parts {
		total += p.Quantity * p.UnitCost
	}
	return total
}
