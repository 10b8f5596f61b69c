// Package view derives calendar-ready projections from a snapshot of
// the entry collection: day filters, month groupings, per-category
// breakdowns and color-resolved calendar events. Every function is
// pure; nothing here mutates the collection it is given.
package view

import (
	"fmt"
	"sort"
	"time"

	"tempo/internal/core"
)

// DayGroup is one day's worth of entries inside a month view.
type DayGroup struct {
	Date    string // bucket key, YYYY-MM-DD
	Label   string // display label, e.g. "Saturday, 01/06/2024"
	Entries []core.TimeEntry
}

// Event is the presentation shape a calendar grid renders. Title
// carries the category name, matching how the grid labels slots.
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Color       string
	TextColor   string
}

// DayEntries returns the entries whose bucket equals the reference
// day's bucket, preserving source order.
func DayEntries(entries []core.TimeEntry, ref time.Time) []core.TimeEntry {
	bucket := core.BucketDate(ref)
	var out []core.TimeEntry
	for _, e := range entries {
		if e.Date == bucket {
			out = append(out, e)
		}
	}
	return out
}

// MonthGroups returns the reference month's entries grouped per day,
// days ascending. Entries with unparseable buckets are skipped rather
// than misfiled.
func MonthGroups(entries []core.TimeEntry, ref time.Time) []DayGroup {
	ref = ref.In(time.Local)
	var monthly []core.TimeEntry
	for _, e := range entries {
		day, err := core.ParseBucket(e.Date)
		if err != nil {
			continue
		}
		if day.Year() == ref.Year() && day.Month() == ref.Month() {
			monthly = append(monthly, e)
		}
	}

	// Bucket keys sort lexicographically in date order.
	sort.SliceStable(monthly, func(i, j int) bool {
		return monthly[i].Date < monthly[j].Date
	})

	var groups []DayGroup
	for _, e := range monthly {
		if n := len(groups); n > 0 && groups[n-1].Date == e.Date {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		day, _ := core.ParseBucket(e.Date)
		groups = append(groups, DayGroup{
			Date:    e.Date,
			Label:   dayLabel(day),
			Entries: []core.TimeEntry{e},
		})
	}
	return groups
}

func dayLabel(day time.Time) string {
	return fmt.Sprintf("%s, %s", day.Weekday(), day.Format("02/01/2006"))
}

// Project maps entries to calendar events, resolving colors against the
// current category list. Entries with no category, or with a category
// name that no longer exists after a cascade, get the neutral pair.
func Project(entries []core.TimeEntry, cats []core.Category) []Event {
	p := NewPalette(cats)
	events := make([]Event, 0, len(entries))
	for _, e := range entries {
		events = append(events, Event{
			ID:          e.ID,
			Title:       e.Category,
			Description: e.Description,
			Start:       e.StartTime,
			End:         e.EndTime,
			Color:       p.Background(e.Category),
			TextColor:   p.Text(e.Category),
		})
	}
	return events
}

// Palette resolves category names to their color pair.
type Palette struct {
	byName map[string]core.Category
}

func NewPalette(cats []core.Category) Palette {
	byName := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}
	return Palette{byName: byName}
}

func (p Palette) Background(name string) string {
	if c, ok := p.byName[name]; ok {
		return c.Color
	}
	return core.FallbackColor
}

func (p Palette) Text(name string) string {
	if c, ok := p.byName[name]; ok {
		return c.TextColor
	}
	return core.FallbackTextColor
}

// Swatch is the toggle color used by breakdown rows; unknown and
// uncategorized rows share the dimmer fallback.
func (p Palette) Swatch(name string) string {
	if c, ok := p.byName[name]; ok {
		return c.Color
	}
	return core.UncategorizedColor
}
