// Package tracker implements the geofence lifecycle: it resolves addresses
// into coordinates, keeps the set of reminders armed for proximity
// monitoring, evaluates incoming position fixes against that set, and hands
// fired reminders off to the notification gateway exactly once until they
// are re-armed by an update or a reload.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nearby-labs/waypost/internal/geocoding"
	"github.com/nearby-labs/waypost/internal/metrics"
	"github.com/nearby-labs/waypost/internal/models"
	"github.com/nearby-labs/waypost/internal/notify"
	"github.com/nearby-labs/waypost/internal/position"
	"github.com/nearby-labs/waypost/internal/store"
)

// triggerRadiusMeters is the fixed geofence radius. A fix strictly closer
// than this fires the reminder; a fix at exactly this distance does not.
const triggerRadiusMeters = 100.0

var (
	// ErrGeocodeFailed marks an address the provider could not resolve.
	ErrGeocodeFailed = errors.New("address could not be geocoded")
	// ErrNotFound marks an edit of a reminder that is not in the store.
	ErrNotFound = errors.New("reminder not found")
)

// Tracker orchestrates geocoding, monitoring-set membership, proximity
// detection, and notification dispatch. A single mutex guards the store and
// the monitoring set; the geocode call is the only suspension point and
// always completes before the lock is taken.
type Tracker struct {
	log          *slog.Logger       // Logger for logging tracker activities
	store        *store.Store       // Durable ordered reminder list
	provider     geocoding.Provider // Geocoding provider for external geocoding services
	providerName string             // Name of the provider for metrics labeling
	notifier     notify.Notifier    // Push gateway the alerts are handed to
	source       position.Source    // Feed of position fixes
	metrics      *metrics.Metrics   // Metrics for tracking service performance

	mu        sync.Mutex
	monitored map[uuid.UUID]models.Reminder
	feedOnce  sync.Once
}

// New creates a Tracker. The position feed is not consumed until the first
// reminder is armed.
func New(
	log *slog.Logger,
	st *store.Store,
	provider geocoding.Provider,
	providerName string,
	notifier notify.Notifier,
	source position.Source,
	metrics *metrics.Metrics,
) *Tracker {
	return &Tracker{
		log:          log,
		store:        st,
		provider:     provider,
		providerName: providerName,
		notifier:     notifier,
		source:       source,
		metrics:      metrics,
		monitored:    make(map[uuid.UUID]models.Reminder),
	}
}

// Load rebuilds tracker state from the persisted store. Every stored
// reminder is re-armed for monitoring, including ones that had already fired
// before the process restarted.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}

	for _, rem := range t.store.Reminders() {
		t.monitored[rem.ID] = rem
	}
	t.metrics.MonitoredReminders.Set(float64(len(t.monitored)))

	if len(t.monitored) > 0 {
		t.ensureFeed(ctx)
	}

	t.log.InfoContext(ctx, "Tracker state loaded", "reminders", len(t.monitored))
	return nil
}

// AddReminder geocodes the address and, on success, creates a reminder with
// a fresh identifier, persists it, arms it for monitoring, and dispatches an
// immediate notification. On geocoding failure nothing changes and the
// returned error wraps ErrGeocodeFailed.
func (t *Tracker) AddReminder(ctx context.Context, task, address string) (models.Reminder, error) {
	coords, err := t.geocode(ctx, address)
	if err != nil {
		return models.Reminder{}, err
	}

	rem := models.Reminder{
		ID:        uuid.New(),
		Task:      task,
		Address:   address,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}

	t.mu.Lock()
	if err = t.store.Append(ctx, rem); err != nil {
		t.log.ErrorContext(ctx, "Failed to persist new reminder", "id", rem.ID, "error", err)
	}
	t.monitored[rem.ID] = rem
	t.metrics.MonitoredReminders.Set(float64(len(t.monitored)))
	t.ensureFeed(ctx)
	t.mu.Unlock()

	// A reminder also announces itself the moment it is registered, before
	// any proximity entry. Kept from the reviewed behavior; the gateway
	// collapses it with the entry alert by ID.
	t.dispatch(ctx, rem)

	t.log.InfoContext(ctx, "Reminder created", "id", rem.ID, "task", rem.Task)
	return rem, nil
}

// UpdateReminder replaces the stored entry with the same identifier and
// re-arms it for monitoring, overwriting any existing membership. A reminder
// that already fired becomes eligible to fire again. Updating an identifier
// that is not in the store is a no-op.
func (t *Tracker) UpdateReminder(ctx context.Context, updated models.Reminder) error {
	t.mu.Lock()
	if _, ok := t.store.Get(updated.ID); !ok {
		t.mu.Unlock()
		t.log.WarnContext(ctx, "Ignoring update for unknown reminder", "id", updated.ID)
		return nil
	}

	if err := t.store.Replace(ctx, updated.ID, updated); err != nil {
		t.log.ErrorContext(ctx, "Failed to persist updated reminder", "id", updated.ID, "error", err)
	}
	t.monitored[updated.ID] = updated
	t.metrics.MonitoredReminders.Set(float64(len(t.monitored)))
	t.ensureFeed(ctx)
	t.mu.Unlock()

	t.dispatch(ctx, updated)

	t.log.InfoContext(ctx, "Reminder updated", "id", updated.ID, "task", updated.Task)
	return nil
}

// EditReminder re-geocodes the new address and applies the result as an
// update to an existing reminder. It returns ErrNotFound for an unknown
// identifier and an error wrapping ErrGeocodeFailed when the address does
// not resolve; in both cases nothing changes.
func (t *Tracker) EditReminder(ctx context.Context, id uuid.UUID, task, address string) (models.Reminder, error) {
	t.mu.Lock()
	_, ok := t.store.Get(id)
	t.mu.Unlock()
	if !ok {
		return models.Reminder{}, ErrNotFound
	}

	coords, err := t.geocode(ctx, address)
	if err != nil {
		return models.Reminder{}, err
	}

	updated := models.Reminder{
		ID:        id,
		Task:      task,
		Address:   address,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}

	if err = t.UpdateReminder(ctx, updated); err != nil {
		return models.Reminder{}, err
	}
	return updated, nil
}

// DeleteReminder removes the reminder from the store and from the monitoring
// set. Deleting an identifier that does not exist is a no-op.
func (t *Tracker) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove reminder: %w", err)
	}
	delete(t.monitored, id)
	t.metrics.MonitoredReminders.Set(float64(len(t.monitored)))

	t.log.InfoContext(ctx, "Reminder deleted", "id", id)
	return nil
}

// Reminders returns a snapshot of the stored reminder list.
func (t *Tracker) Reminders() []models.Reminder {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Reminders()
}

// OnPositionUpdate evaluates a position fix against every armed reminder.
// Each member strictly within the trigger radius is dispatched once and
// removed from the monitoring set; its store entry stays untouched, so the
// reminder remains listed but no longer fires.
func (t *Tracker) OnPositionUpdate(ctx context.Context, pos models.Position) {
	t.metrics.PositionUpdates.Inc()

	t.mu.Lock()
	var fired []models.Reminder
	for id, rem := range t.monitored {
		if distanceMeters(pos.Coordinates, rem.Coordinates()) < triggerRadiusMeters {
			fired = append(fired, rem)
			delete(t.monitored, id)
		}
	}
	t.metrics.MonitoredReminders.Set(float64(len(t.monitored)))
	t.mu.Unlock()

	for _, rem := range fired {
		t.metrics.GeofenceTriggers.Inc()
		t.log.InfoContext(ctx, "Reminder fired by proximity entry", "id", rem.ID, "task", rem.Task)
		t.dispatch(ctx, rem)
	}
}

// geocode resolves the address through the provider, recording duration and
// failures. Failures are terminal for the call; there is no retry.
func (t *Tracker) geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	startTime := time.Now()
	coords, err := t.provider.Geocode(ctx, address)
	t.metrics.GeocodeSeconds.WithLabelValues(t.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		t.metrics.GeocodeFailures.Inc()
		t.log.ErrorContext(ctx, "Failed to geocode address", "address", address, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}

	return coords, nil
}

// dispatch hands one alert to the notification gateway. Delivery failures
// are logged and dropped; the tracker never retries.
func (t *Tracker) dispatch(ctx context.Context, rem models.Reminder) {
	note := notify.Notification{ID: rem.ID, Title: rem.Task, Body: rem.Address}
	if err := t.notifier.Notify(ctx, note); err != nil {
		t.metrics.Notifications.WithLabelValues("failure").Inc()
		t.log.ErrorContext(ctx, "Failed to dispatch notification", "id", rem.ID, "error", err)
		return
	}
	t.metrics.Notifications.WithLabelValues("success").Inc()
}

// ensureFeed starts consuming the position feed the first time a reminder is
// armed. Once started the feed runs for the life of the process; it is
// detached from the arming call's context so a finished request cannot stop
// it. Callers must hold t.mu.
func (t *Tracker) ensureFeed(ctx context.Context) {
	t.feedOnce.Do(func() {
		feedCtx := context.WithoutCancel(ctx)
		fixes, err := t.source.Start(feedCtx)
		if err != nil {
			t.log.ErrorContext(ctx, "Failed to start position feed", "error", err)
			return
		}

		go func() {
			for pos := range fixes {
				t.OnPositionUpdate(feedCtx, pos)
			}
		}()

		t.log.InfoContext(ctx, "Position feed started")
	})
}
