package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tempo/internal/amqp"
	"tempo/internal/core"
	"tempo/internal/log"
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

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context())
	if err != nil {
		s.logError(r, log.OpList, err)
		writeError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}

	payload := make([]entryPayload, len(entries))
	for i, e := range entries {
		payload[i] = entryPayload(e)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	var p entryPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.StartTime.IsZero() || p.EndTime.IsZero() {
		writeError(w, http.StatusBadRequest, "startTime and endTime are required")
		return
	}

	// The bucket date is re-derived server-side from the start time, so
	// a client cannot file an entry under the wrong day.
	e := core.TimeEntry(p)
	e.Date = core.BucketDate(e.StartTime)
	if err := e.Validate(); err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	saved, err := s.store.SaveEntry(r.Context(), e)
	if err != nil {
		s.logError(r, log.OpSave, err)
		writeError(w, statusFromErr(err), "failed to save entry")
		return
	}

	s.publish(r, amqp.OpEntrySaved, saved.ID)
	writeJSON(w, http.StatusCreated, entryPayload(saved))
}

func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var p schedulePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.StartTime.IsZero() || p.EndTime.IsZero() || p.Date == "" {
		writeError(w, http.StatusBadRequest, "startTime, endTime and date are required")
		return
	}
	if !p.EndTime.After(p.StartTime) {
		writeError(w, http.StatusBadRequest, core.ErrInvalidRange.Error())
		return
	}

	updated, err := s.store.UpdateEntrySchedule(r.Context(), id, p.StartTime, p.EndTime, p.Date)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logError(r, log.OpReschedule, err)
		}
		writeError(w, statusFromErr(err), "failed to update entry schedule")
		return
	}

	s.publish(r, amqp.OpEntryRescheduled, id)
	writeJSON(w, http.StatusOK, entryPayload(updated))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteEntry(r.Context(), id); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logError(r, log.OpDelete, err)
		}
		writeError(w, statusFromErr(err), "failed to delete entry")
		return
	}

	s.publish(r, amqp.OpEntryDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories(r.Context())
	if err != nil {
		s.logError(r, log.OpList, err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	payload := make([]categoryPayload, len(cats))
	for i, c := range cats {
		payload[i] = categoryPayload(c)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var p categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.store.CreateCategory(r.Context(), p.Name, p.Color, p.TextColor)
	if err != nil {
		if !errors.Is(err, core.ErrConflict) && !errors.Is(err, core.ErrEmptyName) {
			s.logError(r, log.OpCreateCategory, err)
		}
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, categoryPayload(created))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteCategoryCascade(r.Context(), id); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logError(r, log.OpDeleteCategory, err)
		}
		writeError(w, statusFromErr(err), "failed to delete category")
		return
	}

	s.publish(r, amqp.OpCategoryDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}

// publish emits a mutation event. Publishing never fails the request.
func (s *Server) publish(r *http.Request, op, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishMutation(r.Context(), op, id); err != nil {
		s.logger.WarnContext(r.Context(), "Failed to publish mutation event",
			log.FieldOperation, op,
			log.FieldEntryID, id,
			log.FieldError, err)
	}
}

func (s *Server) logError(r *http.Request, op string, err error) {
	s.logger.ErrorContext(r.Context(), "Request handler error",
		log.FieldOperation, op,
		log.FieldPath, r.URL.Path,
		log.FieldError, err)
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidRange),
		errors.Is(err, core.ErrInvalidBucket):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorPayload{Error: msg})
}
