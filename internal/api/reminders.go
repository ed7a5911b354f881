package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nearby-labs/waypost/internal/tracker"
)

// reminderRequest is the payload for creating or editing a reminder.
type reminderRequest struct {
	Task    string `json:"task"`
	Address string `json:"address"`
}

func (r reminderRequest) validate() string {
	if r.Task == "" {
		return "task is required"
	}
	if r.Address == "" {
		return "address is required"
	}
	return ""
}

// listReminders handles GET /api/reminders.
func (s *Server) listReminders(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.reminders.Reminders())
}

// createReminder handles POST /api/reminders. An address the provider cannot
// resolve is the caller's problem and is reported as 422.
func (s *Server) createReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	rem, err := s.reminders.AddReminder(r.Context(), req.Task, req.Address)
	if err != nil {
		if errors.Is(err, tracker.ErrGeocodeFailed) {
			s.writeError(w, http.StatusUnprocessableEntity, "address could not be geocoded")
			return
		}
		s.log.ErrorContext(r.Context(), "failed to create reminder", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusCreated, rem)
}

// updateReminder handles PUT /api/reminders/{id}.
func (s *Server) updateReminder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	var req reminderRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	rem, err := s.reminders.EditReminder(r.Context(), id, req.Task, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "reminder not found")
		case errors.Is(err, tracker.ErrGeocodeFailed):
			s.writeError(w, http.StatusUnprocessableEntity, "address could not be geocoded")
		default:
			s.log.ErrorContext(r.Context(), "failed to update reminder", "id", id, "error", err)
			s.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, rem)
}

// deleteReminder handles DELETE /api/reminders/{id}. Deletion is idempotent,
// so an unknown id still answers 204.
func (s *Server) deleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	if err = s.reminders.DeleteReminder(r.Context(), id); err != nil {
		s.log.ErrorContext(r.Context(), "failed to delete reminder", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
