package core

import (
	"testing"
	"time"
)

func TestBucketDate(t *testing.T) {
	cases := []struct {
		start time.Time
		want  string
	}{
		{time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local), "2024-06-01"},
		{time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local), "2024-01-05"},
		// Crossing midnight still buckets to the start day.
		{time.Date(2024, 6, 1, 23, 30, 0, 0, time.Local), "2024-06-01"},
	}
	for i, tc := range cases {
		if got := BucketDate(tc.start); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestBucketDateIdempotent(t *testing.T) {
	// The bucket derived at creation must equal the bucket independently
	// recomputed from the start time's local calendar day.
	start := time.Date(2024, 6, 1, 22, 15, 0, 0, time.Local)
	e := TimeEntry{
		ID:        "a",
		Date:      BucketDate(start),
		StartTime: start,
		EndTime:   start.Add(3 * time.Hour),
	}
	y, m, d := e.StartTime.Date()
	recomputed := time.Date(y, m, d, 0, 0, 0, 0, time.Local).Format(BucketLayout)
	if e.Date != recomputed {
		t.Fatalf("bucket %q does not match recomputed %q", e.Date, recomputed)
	}
	if e.Date != BucketDate(e.StartTime) {
		t.Fatalf("bucket derivation not idempotent: %q vs %q", e.Date, BucketDate(e.StartTime))
	}
}

func TestParseBucket(t *testing.T) {
	got, err := ParseBucket("2024-06-01")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.June || got.Day() != 1 {
		t.Fatalf("unexpected parsed date: %v", got)
	}
	if _, err := ParseBucket("06/01/2024"); err == nil {
		t.Fatalf("expected error for non-canonical date")
	}
	if _, err := ParseBucket(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestTimeEntryValidate(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	good := TimeEntry{ID: "a", Date: "2024-06-01", StartTime: start, EndTime: start.Add(time.Hour)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []TimeEntry{
		{ID: "a", Date: "2024-06-01", StartTime: start, EndTime: start},                     // zero duration
		{ID: "a", Date: "2024-06-01", StartTime: start, EndTime: start.Add(-time.Minute)},  // negative
		{ID: "a", Date: "not-a-date", StartTime: start, EndTime: start.Add(time.Hour)},     // bad bucket
		{ID: "a", Date: "", StartTime: start, EndTime: start.Add(time.Hour)},               // missing bucket
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTimeEntryHours(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	cases := []struct {
		end  time.Time
		want float64
	}{
		{start.Add(150 * time.Minute), 2.5},
		{start.Add(time.Hour), 1.0},
		{start, 0},
		{start.Add(-30 * time.Minute), -0.5},
	}
	for i, tc := range cases {
		e := TimeEntry{StartTime: start, EndTime: tc.end}
		if got := e.Hours(); got != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (Category{Name: "Work"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Category{Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
