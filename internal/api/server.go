// Package api implements the HTTP surface of the reminder service: CRUD for
// reminders and the position ingest endpoint the device feed posts into.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nearby-labs/waypost/internal/models"
)

// ReminderService defines the tracker operations the API depends on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a fake without touching geocoding or persistence.
type ReminderService interface {
	AddReminder(ctx context.Context, task, address string) (models.Reminder, error)
	EditReminder(ctx context.Context, id uuid.UUID, task, address string) (models.Reminder, error)
	DeleteReminder(ctx context.Context, id uuid.UUID) error
	Reminders() []models.Reminder
}

// PositionPublisher accepts position fixes from the ingest endpoint.
type PositionPublisher interface {
	Publish(pos models.Position) bool
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	log       *slog.Logger
	reminders ReminderService
	positions PositionPublisher
}

// NewServer constructs the Server with all its dependencies.
func NewServer(log *slog.Logger, reminders ReminderService, positions PositionPublisher) *Server {
	return &Server{log: log, reminders: reminders, positions: positions}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/reminders", func(r chi.Router) {
		r.Get("/", s.listReminders)
		r.Post("/", s.createReminder)
		r.Put("/{id}", s.updateReminder)
		r.Delete("/{id}", s.deleteReminder)
	})
	r.Post("/api/positions", s.ingestPosition)

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to write response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg})
}
