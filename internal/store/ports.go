// Package store defines the ports the scheduling engine uses to reach
// the backing record store. Implementations live in the subpackages
// (memory, remote) and in internal/storage (SQLite).
package store

import (
	"context"
	"time"

	"tempo/internal/core"
)

type (
	// EntryStore persists time entries. Save is an upsert by id, so a
	// retried save is harmless. UpdateSchedule touches only the
	// scheduling fields and is what drag/resize goes through.
	EntryStore interface {
		ListEntries(ctx context.Context) ([]core.TimeEntry, error)
		SaveEntry(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error)
		UpdateEntrySchedule(ctx context.Context, id string, start, end time.Time, date string) (core.TimeEntry, error)
		DeleteEntry(ctx context.Context, id string) error
	}

	// CategoryStore persists categories. Name uniqueness is enforced at
	// creation (core.ErrConflict). DeleteCategoryCascade removes the
	// category and clears the category field on every referencing entry
	// in one atomic unit; it must never leave entries pointing at a
	// deleted category's name.
	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		CreateCategory(ctx context.Context, name, color, textColor string) (core.Category, error)
		DeleteCategoryCascade(ctx context.Context, id string) error
	}

	// Store is the full record-store contract the coordinator works
	// against.
	Store interface {
		EntryStore
		CategoryStore
	}
)
