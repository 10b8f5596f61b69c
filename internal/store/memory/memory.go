// Package memory is an in-process record store. It is the default
// backend and what the engine tests run against; it enforces the same
// contract as the SQLite and remote backends.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tempo/internal/core"
)

type Store struct {
	mu      sync.Mutex
	entries []core.TimeEntry
	cats    []core.Category
}

func New() *Store {
	return &Store{}
}

// Seed replaces the store contents, bypassing validation. Test helper.
func (s *Store) Seed(entries []core.TimeEntry, cats []core.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]core.TimeEntry(nil), entries...)
	s.cats = append([]core.Category(nil), cats...)
}

func (s *Store) ListEntries(_ context.Context) ([]core.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.TimeEntry(nil), s.entries...), nil
}

// SaveEntry upserts by id. A blank id is treated as a create and gets a
// generated one. The bucket date is re-derived from the start time, the
// same normalization the real server applies.
func (s *Store) SaveEntry(_ context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Date = core.BucketDate(e.StartTime)
	if err := e.Validate(); err != nil {
		return core.TimeEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			s.entries[i] = e
			return e, nil
		}
	}
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *Store) UpdateEntrySchedule(_ context.Context, id string, start, end time.Time, date string) (core.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].StartTime = start
			s.entries[i].EndTime = end
			s.entries[i].Date = date
			return s.entries[i], nil
		}
	}
	return core.TimeEntry{}, core.ErrNotFound
}

func (s *Store) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats...), nil
}

func (s *Store) CreateCategory(_ context.Context, name, color, textColor string) (core.Category, error) {
	name = strings.TrimSpace(name)
	c := core.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		TextColor: textColor,
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if c.TextColor == "" {
		c.TextColor = core.ContrastTextColor(c.Color)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.cats {
		if existing.Name == name {
			return core.Category{}, core.ErrConflict
		}
	}
	s.cats = append(s.cats, c)
	return c, nil
}

// DeleteCategoryCascade removes the category and clears the category
// field on every referencing entry. Both happen under one lock, so the
// cascade is atomic with the row removal.
func (s *Store) DeleteCategoryCascade(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.cats {
		if s.cats[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.ErrNotFound
	}

	name := s.cats[idx].Name
	s.cats = append(s.cats[:idx], s.cats[idx+1:]...)
	for i := range s.entries {
		if s.entries[i].Category == name {
			s.entries[i].Category = ""
		}
	}
	return nil
}
