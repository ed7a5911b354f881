// Package store holds the durable ordered list of reminders. The whole list
// is persisted as a single JSON blob under one well-known key, matching the
// flat persistence model the service was designed around.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nearby-labs/waypost/internal/models"
)

// remindersKey is the well-known key the reminder blob lives under.
const remindersKey = "reminders"

// KV is the key-value backend the store persists into.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store keeps the ordered reminder list in memory and mirrors every mutation
// into the KV backend. It has no locking of its own: the tracker is the
// single owner and serializes all access.
type Store struct {
	kv        KV
	log       *slog.Logger
	reminders []models.Reminder
}

// New creates a Store over the given key-value backend.
func New(kv KV, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Load reads the persisted blob and replaces the in-memory list. An absent
// key or an undecodable payload yields an empty list; neither is surfaced as
// an error to the caller.
func (s *Store) Load(ctx context.Context) error {
	blob, err := s.kv.Get(ctx, remindersKey)
	if err != nil {
		return fmt.Errorf("failed to load reminder blob: %w", err)
	}

	if blob == nil {
		s.reminders = nil
		return nil
	}

	var reminders []models.Reminder
	if err = json.Unmarshal(blob, &reminders); err != nil {
		s.log.WarnContext(ctx, "Stored reminder blob is not decodable, starting empty", "error", err)
		s.reminders = nil
		return nil
	}

	s.reminders = reminders
	return nil
}

// Reminders returns a snapshot copy of the ordered reminder list.
func (s *Store) Reminders() []models.Reminder {
	out := make([]models.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// Get returns the reminder with the given identifier, if present.
func (s *Store) Get(id uuid.UUID) (models.Reminder, bool) {
	for _, rem := range s.reminders {
		if rem.ID == id {
			return rem, true
		}
	}
	return models.Reminder{}, false
}

// Append adds a reminder to the end of the list and persists the full list.
func (s *Store) Append(ctx context.Context, reminder models.Reminder) error {
	s.reminders = append(s.reminders, reminder)
	return s.save(ctx)
}

// Replace swaps the entry with the given identifier for the provided
// reminder, keeping its position in the list. Replacing an unknown
// identifier is a no-op.
func (s *Store) Replace(ctx context.Context, id uuid.UUID, reminder models.Reminder) error {
	for i, rem := range s.reminders {
		if rem.ID == id {
			s.reminders[i] = reminder
			return s.save(ctx)
		}
	}
	return nil
}

// Remove deletes all entries with the given identifier. Removing an unknown
// identifier is a no-op, which makes deletes idempotent.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	kept := s.reminders[:0]
	removed := false
	for _, rem := range s.reminders {
		if rem.ID == id {
			removed = true
			continue
		}
		kept = append(kept, rem)
	}
	if !removed {
		return nil
	}

	s.reminders = kept
	return s.save(ctx)
}

// save encodes the full list and overwrites the persisted blob. It is invoked
// as a side effect of every mutation, never by consumers directly.
func (s *Store) save(ctx context.Context) error {
	blob, err := json.Marshal(s.reminders)
	if err != nil {
		return fmt.Errorf("failed to encode reminder blob: %w", err)
	}

	if err = s.kv.Put(ctx, remindersKey, blob); err != nil {
		return fmt.Errorf("failed to persist reminder blob: %w", err)
	}

	return nil
}
