// Package schedule keeps the in-memory entry and category collections
// consistent with the backing store under optimistic mutations. Every
// user-initiated change is applied locally first, forwarded to the
// store, and reconciled on the response:
//
//   - save and delete keep their optimistic state on failure and
//     surface the error (the caller may retry),
//   - reschedule resynchronizes the whole collection from the store on
//     failure, discarding any unsynced optimistic edits.
//
// The coordinator owns the only mutable collections; every read hands
// out copies, so aggregation always works over an immutable snapshot.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tempo/internal/amqp"
	"tempo/internal/core"
	"tempo/internal/log"
	"tempo/internal/store"
)

type Coordinator struct {
	mu      sync.Mutex
	entries []core.TimeEntry
	cats    []core.Category

	store  store.Store
	events *amqp.Client // optional; nil skips publishing
	logger *log.Logger
}

func NewCoordinator(st store.Store, events *amqp.Client, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default(log.ComponentSchedule)
	}
	return &Coordinator{
		store:  st,
		events: events,
		logger: logger,
	}
}

// Load fetches entries and categories in parallel and replaces the
// local collections wholesale.
func (c *Coordinator) Load(ctx context.Context) error {
	var (
		entries []core.TimeEntry
		cats    []core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = c.store.ListEntries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = c.store.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.ErrorContext(ctx, "Initial load failed",
			log.FieldOperation, log.OpLoad,
			log.FieldError, err)
		return fmt.Errorf("load collections: %w", err)
	}

	c.mu.Lock()
	c.entries = entries
	c.cats = cats
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "Collections loaded",
		log.FieldOperation, log.OpLoad,
		"entries", len(entries),
		"categories", len(cats))
	return nil
}

// Entries returns a snapshot copy of the entry collection, pending
// optimistic state included.
func (c *Coordinator) Entries() []core.TimeEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.TimeEntry(nil), c.entries...)
}

// Categories returns a snapshot copy of the category collection.
func (c *Coordinator) Categories() []core.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Category(nil), c.cats...)
}

// SaveEntry creates or edits an entry. The bucket date is recomputed
// from the start time, a blank id gets a generated one, and the entry
// is applied locally before the store round trip. On success the
// optimistic record is replaced by the store's version, which is
// authoritative in case the server normalized any field. On failure
// the optimistic state stays and the error is surfaced.
func (c *Coordinator) SaveEntry(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Date = core.BucketDate(e.StartTime)
	if err := e.Validate(); err != nil {
		return core.TimeEntry{}, err
	}

	c.mu.Lock()
	isNew := c.replaceOrAppend(e)
	c.mu.Unlock()

	saved, err := c.store.SaveEntry(ctx, e)
	if err != nil {
		c.logger.ErrorContext(ctx, "Save failed, keeping optimistic state",
			log.FieldOperation, log.OpSave,
			log.FieldEntryID, e.ID,
			"new", isNew,
			log.FieldError, err)
		return e, fmt.Errorf("save entry %s: %w", e.ID, err)
	}

	c.mu.Lock()
	c.replaceOrAppend(saved)
	c.mu.Unlock()

	c.publish(ctx, amqp.OpEntrySaved, saved.ID)
	c.logger.InfoContext(ctx, "Entry saved",
		log.FieldOperation, log.OpSave,
		log.FieldEntryID, saved.ID,
		log.FieldBucketDate, saved.Date,
		"new", isNew)
	return saved, nil
}

// DeleteEntry removes the entry locally and from the store. A store
// failure is surfaced but the local removal is not reverted.
func (c *Coordinator) DeleteEntry(ctx context.Context, id string) error {
	c.mu.Lock()
	c.removeEntry(id)
	c.mu.Unlock()

	if err := c.store.DeleteEntry(ctx, id); err != nil {
		c.logger.ErrorContext(ctx, "Delete failed, local removal kept",
			log.FieldOperation, log.OpDelete,
			log.FieldEntryID, id,
			log.FieldError, err)
		return fmt.Errorf("delete entry %s: %w", id, err)
	}

	c.publish(ctx, amqp.OpEntryDeleted, id)
	c.logger.InfoContext(ctx, "Entry deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldEntryID, id)
	return nil
}

// Reschedule moves an entry to a new start/end (drag or resize). The
// bucket date is recomputed from the new start and the local record is
// updated before the store call, so the UI reflects the move with zero
// latency. On failure the coordinator does not try to undo by hand: it
// reloads the full collection from the store, guaranteeing the local
// state matches whatever the server actually applied.
func (c *Coordinator) Reschedule(ctx context.Context, id string, start, end time.Time) (core.TimeEntry, error) {
	date := core.BucketDate(start)
	moved := core.TimeEntry{ID: id, Date: date, StartTime: start, EndTime: end}
	if err := moved.Validate(); err != nil {
		return core.TimeEntry{}, err
	}

	c.mu.Lock()
	for i := range c.entries {
		if c.entries[i].ID == id {
			c.entries[i].StartTime = start
			c.entries[i].EndTime = end
			c.entries[i].Date = date
			break
		}
	}
	c.mu.Unlock()

	updated, err := c.store.UpdateEntrySchedule(ctx, id, start, end, date)
	if err != nil {
		c.logger.ErrorContext(ctx, "Reschedule failed, resyncing from store",
			log.FieldOperation, log.OpReschedule,
			log.FieldEntryID, id,
			log.FieldError, err)
		if resyncErr := c.resyncEntries(ctx); resyncErr != nil {
			c.logger.ErrorContext(ctx, "Resync after failed reschedule also failed",
				log.FieldOperation, log.OpResync,
				log.FieldError, resyncErr)
		}
		return core.TimeEntry{}, fmt.Errorf("reschedule entry %s: %w", id, err)
	}

	c.mu.Lock()
	c.replaceOrAppend(updated)
	c.mu.Unlock()

	c.publish(ctx, amqp.OpEntryRescheduled, id)
	c.logger.InfoContext(ctx, "Entry rescheduled",
		log.FieldOperation, log.OpReschedule,
		log.FieldEntryID, id,
		log.FieldBucketDate, date)
	return updated, nil
}

// CreateCategory validates and creates a category. A duplicate name is
// rejected locally before any store call; either way local state only
// changes after the store confirms.
func (c *Coordinator) CreateCategory(ctx context.Context, name, color, textColor string) (core.Category, error) {
	if err := (core.Category{Name: name}).Validate(); err != nil {
		return core.Category{}, err
	}
	if textColor == "" {
		textColor = core.ContrastTextColor(color)
	}

	c.mu.Lock()
	for _, existing := range c.cats {
		if existing.Name == name {
			c.mu.Unlock()
			return core.Category{}, core.ErrConflict
		}
	}
	c.mu.Unlock()

	created, err := c.store.CreateCategory(ctx, name, color, textColor)
	if err != nil {
		c.logger.ErrorContext(ctx, "Category creation failed",
			log.FieldOperation, log.OpCreateCategory,
			log.FieldCategory, name,
			log.FieldError, err)
		return core.Category{}, fmt.Errorf("create category %q: %w", name, err)
	}

	c.mu.Lock()
	c.cats = append(c.cats, created)
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "Category created",
		log.FieldOperation, log.OpCreateCategory,
		log.FieldCategoryID, created.ID,
		log.FieldCategory, created.Name)
	return created, nil
}

// DeleteCategory asks the store for an atomic cascade delete, then
// mirrors the cascade locally: the category is removed and every local
// entry referencing its name loses the reference. Nothing changes
// locally if the store call fails.
func (c *Coordinator) DeleteCategory(ctx context.Context, id string) error {
	c.mu.Lock()
	name, ok := c.categoryName(id)
	c.mu.Unlock()
	if !ok {
		return core.ErrNotFound
	}

	if err := c.store.DeleteCategoryCascade(ctx, id); err != nil {
		c.logger.ErrorContext(ctx, "Category cascade delete failed",
			log.FieldOperation, log.OpDeleteCategory,
			log.FieldCategoryID, id,
			log.FieldError, err)
		return fmt.Errorf("delete category %s: %w", id, err)
	}

	c.mu.Lock()
	c.removeCategory(id)
	cleared := clearCategoryRefs(c.entries, name)
	c.mu.Unlock()

	c.publish(ctx, amqp.OpCategoryDeleted, id)
	c.logger.InfoContext(ctx, "Category deleted",
		log.FieldOperation, log.OpDeleteCategory,
		log.FieldCategoryID, id,
		log.FieldCategory, name,
		"entries_cleared", cleared)
	return nil
}

// resyncEntries reloads the entry collection from the store, replacing
// local state wholesale.
func (c *Coordinator) resyncEntries(ctx context.Context) error {
	entries, err := c.store.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("resync entries: %w", err)
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "Entries resynced from store",
		log.FieldOperation, log.OpResync,
		"entries", len(entries))
	return nil
}

// replaceOrAppend upserts into the local collection. Caller holds the
// lock. Reports whether the entry was new.
func (c *Coordinator) replaceOrAppend(e core.TimeEntry) bool {
	for i := range c.entries {
		if c.entries[i].ID == e.ID {
			c.entries[i] = e
			return false
		}
	}
	c.entries = append(c.entries, e)
	return true
}

func (c *Coordinator) removeEntry(id string) {
	for i := range c.entries {
		if c.entries[i].ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

func (c *Coordinator) categoryName(id string) (string, bool) {
	for _, cat := range c.cats {
		if cat.ID == id {
			return cat.Name, true
		}
	}
	return "", false
}

func (c *Coordinator) removeCategory(id string) {
	for i := range c.cats {
		if c.cats[i].ID == id {
			c.cats = append(c.cats[:i], c.cats[i+1:]...)
			return
		}
	}
}

// publish fires a mutation event when a publisher is configured. A
// publish failure is logged and swallowed; the mutation already
// succeeded.
func (c *Coordinator) publish(ctx context.Context, op, id string) {
	if c.events == nil {
		return
	}
	if err := c.events.PublishMutation(ctx, op, id); err != nil {
		c.logger.WarnContext(ctx, "Mutation event publish failed",
			log.FieldOperation, log.OpPublish,
			"event", op,
			log.FieldError, err)
	}
}
