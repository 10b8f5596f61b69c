package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tempo/internal/core"
)

func TestListEntries(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/entries" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]entryPayload{
			{ID: "e1", Date: "2024-06-01", StartTime: start, EndTime: start.Add(time.Hour), Category: "Work"},
		})
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).ListEntries(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "e1" || entries[0].Category != "Work" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if !entries[0].StartTime.Equal(start) {
		t.Fatalf("start time did not round-trip: %v", entries[0].StartTime)
	}
}

func TestSaveEntrySendsBodyAndDecodesResponse(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/entries" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
		var p entryPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		// Server assigns the id and the normalized bucket.
		p.ID = "generated"
		p.Date = "2024-06-01"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
	}))
	defer srv.Close()

	saved, err := NewClient(srv.URL).SaveEntry(context.Background(), core.TimeEntry{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Category:  "Work",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != "generated" || saved.Date != "2024-06-01" {
		t.Fatalf("server record not adopted: %+v", saved)
	}
}

func TestStatusMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/entries/ghost":
			w.WriteHeader(http.StatusNotFound)
		case "/api/categories":
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(errorPayload{Error: "database unavailable"})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	if err := c.DeleteEntry(ctx, "ghost"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.UpdateEntrySchedule(ctx, "ghost", time.Now(), time.Now().Add(time.Hour), "2024-06-01"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.CreateCategory(ctx, "Work", "#3b82f6", ""); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	_, err := c.ListEntries(ctx)
	if err == nil || errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestDeleteCategoryCascade(t *testing.T) {
	var path, method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).DeleteCategoryCascade(context.Background(), "c1"); err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if method != http.MethodDelete || path != "/api/categories/c1" {
		t.Fatalf("unexpected request: %s %s", method, path)
	}
}
