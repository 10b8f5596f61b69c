package view

import (
	"testing"
	"time"

	"tempo/internal/core"
)

func entry(id, date string, startHour, startMin, endHour, endMin int, category string) core.TimeEntry {
	day, err := core.ParseBucket(date)
	if err != nil {
		panic(err)
	}
	start := day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute)
	end := day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute)
	return core.TimeEntry{ID: id, Date: date, StartTime: start, EndTime: end, Category: category}
}

func TestDayEntries(t *testing.T) {
	entries := []core.TimeEntry{
		entry("e1", "2024-06-01", 9, 0, 10, 0, "Work"),
		entry("e2", "2024-06-02", 9, 0, 10, 0, "Work"),
	}
	ref := time.Date(2024, 6, 1, 15, 0, 0, 0, time.Local)

	got := DayEntries(entries, ref)
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("expected exactly e1, got %+v", got)
	}
}

func TestDayEntriesPreservesSourceOrder(t *testing.T) {
	entries := []core.TimeEntry{
		entry("late", "2024-06-01", 14, 0, 15, 0, ""),
		entry("early", "2024-06-01", 9, 0, 10, 0, ""),
	}
	got := DayEntries(entries, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local))
	if len(got) != 2 || got[0].ID != "late" || got[1].ID != "early" {
		t.Fatalf("day filter must not sort, got %+v", got)
	}
}

func TestMonthGroups(t *testing.T) {
	entries := []core.TimeEntry{
		entry("e3", "2024-06-10", 9, 0, 10, 0, ""),
		entry("e1", "2024-06-01", 9, 0, 10, 0, ""),
		entry("e2", "2024-06-01", 11, 0, 12, 0, ""),
		entry("other", "2024-07-01", 9, 0, 10, 0, ""),
		{ID: "bad", Date: "junk"},
	}
	ref := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)

	groups := MonthGroups(entries, ref)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}
	if groups[0].Date != "2024-06-01" || groups[1].Date != "2024-06-10" {
		t.Fatalf("groups out of order: %q, %q", groups[0].Date, groups[1].Date)
	}
	if len(groups[0].Entries) != 2 {
		t.Fatalf("expected 2 entries on 2024-06-01, got %d", len(groups[0].Entries))
	}
	if groups[0].Label != "Saturday, 01/06/2024" {
		t.Fatalf("unexpected label %q", groups[0].Label)
	}
}

func TestDailyBreakdown(t *testing.T) {
	entries := []core.TimeEntry{
		entry("e1", "2024-06-01", 9, 0, 11, 30, "Work"),
		entry("e2", "2024-06-01", 13, 0, 14, 0, "Work"),
	}
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	b := DailyBreakdown(entries, ref)
	if len(b.Rows) != 1 {
		t.Fatalf("expected one Work row, got %d", len(b.Rows))
	}
	if b.Rows[0].Category != "Work" || b.Rows[0].Hours != 3.5 {
		t.Fatalf("expected Work with 3.5h (2.5 + 1.0), got %+v", b.Rows[0])
	}
	if b.Total() != 3.5 {
		t.Fatalf("expected total 3.5, got %v", b.Total())
	}

	b.Toggle("Work")
	if b.Total() != 0 {
		t.Fatalf("toggled-off row must not count, total %v", b.Total())
	}
	if len(b.Rows) != 1 || b.Rows[0].Hours != 3.5 {
		t.Fatalf("toggle must not delete the row, got %+v", b.Rows)
	}
	b.Toggle("Work")
	if b.Total() != 3.5 {
		t.Fatalf("expected total restored to 3.5, got %v", b.Total())
	}
}

func TestDailyBreakdownUncategorized(t *testing.T) {
	entries := []core.TimeEntry{
		entry("e1", "2024-06-01", 9, 0, 10, 0, ""),
		entry("e2", "2024-06-01", 10, 0, 10, 0, ""), // zero duration passes through
	}
	b := DailyBreakdown(entries, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local))
	if len(b.Rows) != 1 || b.Rows[0].Category != UncategorizedLabel {
		t.Fatalf("expected a single %q row, got %+v", UncategorizedLabel, b.Rows)
	}
	if b.Rows[0].Hours != 1.0 {
		t.Fatalf("expected 1.0h, got %v", b.Rows[0].Hours)
	}
}

func TestProject(t *testing.T) {
	cats := []core.Category{
		{ID: "c1", Name: "Work", Color: "#3b82f6", TextColor: "#FFFFFF"},
	}
	entries := []core.TimeEntry{
		entry("e1", "2024-06-01", 9, 0, 10, 0, "Work"),
		entry("e2", "2024-06-01", 10, 0, 11, 0, ""),
		entry("e3", "2024-06-01", 11, 0, 12, 0, "Deleted"),
	}

	events := Project(entries, cats)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Title != "Work" || events[0].Color != "#3b82f6" || events[0].TextColor != "#FFFFFF" {
		t.Fatalf("unexpected categorized event %+v", events[0])
	}
	for _, ev := range events[1:] {
		if ev.Color != core.FallbackColor || ev.TextColor != core.FallbackTextColor {
			t.Fatalf("expected neutral fallback for %q, got %+v", ev.Title, ev)
		}
	}
	if !events[0].Start.Equal(entries[0].StartTime) || !events[0].End.Equal(entries[0].EndTime) {
		t.Fatalf("event must carry the entry's instants")
	}
}

func TestPaletteSwatch(t *testing.T) {
	p := NewPalette([]core.Category{{Name: "Work", Color: "#3b82f6"}})
	if got := p.Swatch("Work"); got != "#3b82f6" {
		t.Fatalf("got %q", got)
	}
	if got := p.Swatch(UncategorizedLabel); got != core.UncategorizedColor {
		t.Fatalf("got %q", got)
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0, "0h"},
		{1, "1h"},
		{2.5, "2h 30m"},
		{3.5, "3h 30m"},
		{1.9999, "2h"}, // minute rounding carries into the hour
		{0.755, "0h 45m"},
		{-2.5, "-2h 30m"},
		{-0.2, "-0h 12m"},
		{-1, "-1h"},
	}
	for _, tc := range cases {
		if got := FormatHours(tc.hours); got != tc.want {
			t.Fatalf("FormatHours(%v) = %q, want %q", tc.hours, got, tc.want)
		}
	}
}
