// Package storage is the SQLite implementation of the record store.
// Entry instants are persisted as RFC 3339 strings and parsed back on
// every read; the date bucket is stored as the plain string the domain
// derived, never recomputed from the stored instant.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tempo/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListEntries(ctx context.Context) ([]core.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, start_time, end_time, category, description
		FROM time_entries
		ORDER BY start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []core.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveEntry upserts by id. A blank id becomes a create with a
// generated id; the bucket date is re-derived from the start time.
func (r *SQLiteRepository) SaveEntry(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Date = core.BucketDate(e.StartTime)
	if err := e.Validate(); err != nil {
		return core.TimeEntry{}, err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO time_entries (id, date, start_time, end_time, category, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			category = excluded.category,
			description = excluded.description,
			updated_at = CURRENT_TIMESTAMP`,
		e.ID, e.Date, formatInstant(e.StartTime), formatInstant(e.EndTime), e.Category, e.Description)
	if err != nil {
		return core.TimeEntry{}, fmt.Errorf("save entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) UpdateEntrySchedule(ctx context.Context, id string, start, end time.Time, date string) (core.TimeEntry, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE time_entries
		SET start_time = ?, end_time = ?, date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		formatInstant(start), formatInstant(end), date, id)
	if err != nil {
		return core.TimeEntry{}, fmt.Errorf("update entry schedule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.TimeEntry{}, fmt.Errorf("update entry schedule: %w", err)
	}
	if affected == 0 {
		return core.TimeEntry{}, core.ErrNotFound
	}
	return r.getEntry(ctx, id)
}

func (r *SQLiteRepository) DeleteEntry(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, color, text_color
		FROM categories
		ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.TextColor); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, name, color, textColor string) (core.Category, error) {
	c := core.Category{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Color:     color,
		TextColor: textColor,
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if c.TextColor == "" {
		c.TextColor = core.ContrastTextColor(c.Color)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Category{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE name = ?`, c.Name).Scan(&exists)
	switch {
	case err == nil:
		return core.Category{}, core.ErrConflict
	case !errors.Is(err, sql.ErrNoRows):
		return core.Category{}, fmt.Errorf("check category name: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, text_color)
		VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, c.TextColor); err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Category{}, fmt.Errorf("commit category: %w", err)
	}
	return c, nil
}

// DeleteCategoryCascade removes the category row and clears the
// category field on every referencing entry in one transaction, so a
// failure leaves neither half applied.
func (r *SQLiteRepository) DeleteCategoryCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx, `SELECT name FROM categories WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("look up category: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE time_entries SET category = '', updated_at = CURRENT_TIMESTAMP
		WHERE category = ?`, name); err != nil {
		return fmt.Errorf("clear category references: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return tx.Commit()
}

func (r *SQLiteRepository) getEntry(ctx context.Context, id string) (core.TimeEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, start_time, end_time, category, description
		FROM time_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.TimeEntry{}, core.ErrNotFound
	}
	return e, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.TimeEntry, error) {
	var (
		e          core.TimeEntry
		start, end string
	)
	if err := row.Scan(&e.ID, &e.Date, &start, &end, &e.Category, &e.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.TimeEntry{}, err
		}
		return core.TimeEntry{}, fmt.Errorf("scan entry: %w", err)
	}

	var err error
	if e.StartTime, err = parseInstant(start); err != nil {
		return core.TimeEntry{}, fmt.Errorf("parse start time: %w", err)
	}
	if e.EndTime, err = parseInstant(end); err != nil {
		return core.TimeEntry{}, fmt.Errorf("parse end time: %w", err)
	}
	return e, nil
}

func formatInstant(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
