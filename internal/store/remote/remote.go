// Package remote implements the record store against the tempo HTTP
// API, so the CLI can coordinate entries through a running server
// instead of touching the database directly.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tempo/internal/core"
)

type entryPayload struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

type categoryPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
}

type schedulePayload struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Date      string    `json:"date"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) ListEntries(ctx context.Context) ([]core.TimeEntry, error) {
	var payload []entryPayload
	if err := c.do(ctx, http.MethodGet, "/api/entries", nil, &payload); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	entries := make([]core.TimeEntry, len(payload))
	for i, p := range payload {
		entries[i] = p.toEntry()
	}
	return entries, nil
}

func (c *Client) SaveEntry(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	var saved entryPayload
	if err := c.do(ctx, http.MethodPost, "/api/entries", fromEntry(e), &saved); err != nil {
		return core.TimeEntry{}, fmt.Errorf("save entry: %w", err)
	}
	return saved.toEntry(), nil
}

func (c *Client) UpdateEntrySchedule(ctx context.Context, id string, start, end time.Time, date string) (core.TimeEntry, error) {
	body := schedulePayload{StartTime: start, EndTime: end, Date: date}
	var updated entryPayload
	if err := c.do(ctx, http.MethodPut, "/api/entries/"+id, body, &updated); err != nil {
		return core.TimeEntry{}, fmt.Errorf("update entry schedule: %w", err)
	}
	return updated.toEntry(), nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/entries/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	var payload []categoryPayload
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &payload); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	cats := make([]core.Category, len(payload))
	for i, p := range payload {
		cats[i] = core.Category(p)
	}
	return cats, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, color, textColor string) (core.Category, error) {
	body := categoryPayload{Name: name, Color: color, TextColor: textColor}
	var created categoryPayload
	if err := c.do(ctx, http.MethodPost, "/api/categories", body, &created); err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return core.Category(created), nil
}

func (c *Client) DeleteCategoryCascade(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/categories/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// do issues one request and decodes the response into out when out is
// non-nil. Non-2xx statuses become domain errors where the status has a
// domain meaning, transport errors otherwise.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return statusError(res)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func statusError(res *http.Response) error {
	switch res.StatusCode {
	case http.StatusNotFound:
		return core.ErrNotFound
	case http.StatusConflict:
		return core.ErrConflict
	}

	var payload errorPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server returned %d: %s", res.StatusCode, payload.Error)
	}
	return fmt.Errorf("server returned %d", res.StatusCode)
}

func (p entryPayload) toEntry() core.TimeEntry {
	return core.TimeEntry(p)
}

func fromEntry(e core.TimeEntry) entryPayload {
	return entryPayload(e)
}
