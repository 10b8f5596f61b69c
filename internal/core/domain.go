package core

import (
	"errors"
	"strings"
	"time"
)

// BucketLayout is the canonical format of the calendar-day bucket key.
const BucketLayout = "2006-01-02"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("name already exists")
	ErrEmptyName     = errors.New("empty category name")
	ErrInvalidRange  = errors.New("end time must be after start time")
	ErrInvalidBucket = errors.New("invalid bucket date")
)

type (
	// TimeEntry is a single dated, time-bounded slot on the calendar.
	//
	// Date is the authoritative bucket key for day/month grouping. It is
	// always derived from StartTime's local calendar day via BucketDate,
	// never from the instant's UTC components, so an entry crossing
	// midnight stays grouped under its start day.
	TimeEntry struct {
		ID          string
		Date        string
		StartTime   time.Time
		EndTime     time.Time
		Category    string // category name; empty means uncategorized
		Description string
	}

	// Category is a named color pair entries reference by name.
	Category struct {
		ID        string
		Name      string
		Color     string
		TextColor string
	}
)

// BucketDate derives the canonical bucket key for a start time.
// Every call site that needs a bucket (save, reschedule, server-side
// normalization) must go through this function.
func BucketDate(t time.Time) string {
	return t.In(time.Local).Format(BucketLayout)
}

// ParseBucket parses a bucket key back into a local midnight time.
func ParseBucket(date string) (time.Time, error) {
	t, err := time.ParseInLocation(BucketLayout, date, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidBucket
	}
	return t, nil
}

// Validate rejects entries whose scheduling fields cannot be persisted.
func (e TimeEntry) Validate() error {
	if !e.EndTime.After(e.StartTime) {
		return ErrInvalidRange
	}
	if _, err := ParseBucket(e.Date); err != nil {
		return err
	}
	return nil
}

// Duration returns the entry length. Aggregation tolerates zero or
// negative values; only Validate rejects them.
func (e TimeEntry) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Hours returns the entry length in fractional hours (minutes / 60).
func (e TimeEntry) Hours() float64 {
	return e.Duration().Minutes() / 60
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
