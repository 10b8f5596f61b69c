package cli

import (
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	start, end, err := parseRange("2024-06-01", "09:00", "11:30")
	if err != nil {
		t.Fatalf("parseRange() error = %v", err)
	}
	want := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	if !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
	if end.Sub(start) != 2*time.Hour+30*time.Minute {
		t.Fatalf("unexpected range length: %v", end.Sub(start))
	}
}

func TestParseRangeRFC3339(t *testing.T) {
	start, _, err := parseRange("", "2024-06-01T09:00:00+02:00", "2024-06-01T10:00:00+02:00")
	if err != nil {
		t.Fatalf("parseRange() error = %v", err)
	}
	want, _ := time.Parse(time.RFC3339, "2024-06-01T09:00:00+02:00")
	if !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
}

func TestParseRangeRejectsBadInput(t *testing.T) {
	if _, _, err := parseRange("not-a-date", "09:00", "10:00"); err == nil {
		t.Fatal("expected error for invalid date")
	}
	if _, _, err := parseRange("", "9 o'clock", "10:00"); err == nil {
		t.Fatal("expected error for invalid start")
	}
}
