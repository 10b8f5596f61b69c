package view

import (
	"fmt"
	"math"
	"time"

	"tempo/internal/core"
)

// UncategorizedLabel is the synthetic bucket entries with an empty
// category accumulate under.
const UncategorizedLabel = "Uncategorized"

// BreakdownRow is one category's accumulated time for a day. Enabled
// is a view-side toggle: switching it off excludes the row from the
// total without touching the underlying entries.
type BreakdownRow struct {
	Category string
	Hours    float64
	Enabled  bool
}

// Breakdown is the per-category duration summary for one day. Rows
// appear in first-seen order of the day's entries.
type Breakdown struct {
	Rows []BreakdownRow
}

// DailyBreakdown accumulates fractional hours per category name for the
// reference day. Durations are not rounded and not clamped; a
// zero-length or inverted entry contributes 0 or a negative amount.
func DailyBreakdown(entries []core.TimeEntry, ref time.Time) *Breakdown {
	b := &Breakdown{}
	for _, e := range DayEntries(entries, ref) {
		name := e.Category
		if name == "" {
			name = UncategorizedLabel
		}
		if row := b.row(name); row != nil {
			row.Hours += e.Hours()
			continue
		}
		b.Rows = append(b.Rows, BreakdownRow{Category: name, Hours: e.Hours(), Enabled: true})
	}
	return b
}

func (b *Breakdown) row(category string) *BreakdownRow {
	for i := range b.Rows {
		if b.Rows[i].Category == category {
			return &b.Rows[i]
		}
	}
	return nil
}

// Toggle flips a row's enabled flag. Unknown categories are ignored.
func (b *Breakdown) Toggle(category string) {
	if row := b.row(category); row != nil {
		row.Enabled = !row.Enabled
	}
}

// Total sums the hours of enabled rows only.
func (b *Breakdown) Total() float64 {
	var total float64
	for _, row := range b.Rows {
		if row.Enabled {
			total += row.Hours
		}
	}
	return total
}

// FormatHours renders fractional hours as "2h" or "2h 30m": whole hours
// truncated, the remainder rounded to the nearest minute. Negative
// totals carry a single leading sign.
func FormatHours(hours float64) string {
	sign := ""
	if hours < 0 {
		sign = "-"
		hours = -hours
	}
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	if m == 0 {
		return fmt.Sprintf("%s%dh", sign, h)
	}
	return fmt.Sprintf("%s%dh %dm", sign, h, m)
}
