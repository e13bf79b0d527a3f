package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Publisher delivers one event to the message bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Store is what the relay needs from the outbox table.
type Store interface {
	FetchUnsent(ctx context.Context, limit int32) ([]Event, error)
	FetchByID(ctx context.Context, id uuid.UUID) (*Event, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
}

type RelayConfig struct {
	MaxRetries int
	RetryDelay time.Duration // grows linearly per attempt
	BatchSize  int32
}

// Relay moves outbox rows onto the bus and marks them sent.
type Relay struct {
	store     Store
	publisher Publisher
	clock     clockwork.Clock
	cfg       RelayConfig

	mu        sync.Mutex
	published uint64
	lastSent  time.Time
}

func NewRelay(store Store, publisher Publisher, clock clockwork.Clock, cfg RelayConfig) *Relay {
	return &Relay{
		store:     store,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
	}
}

// HandleNotification relays the event named by a NOTIFY payload. Events that
// were already relayed by the fallback sweep are skipped.
func (r *Relay) HandleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	event, err := r.store.FetchByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		log.Debug().Str("event_id", id.String()).Msg("event already relayed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch outbox event: %w", err)
	}

	return r.relay(ctx, *event)
}

// ProcessUnsent sweeps one batch of unsent events in creation order and
// returns how many were relayed. A failing event does not stop the sweep.
func (r *Relay) ProcessUnsent(ctx context.Context) (int, error) {
	unsent, err := r.store.FetchUnsent(ctx, r.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range unsent {
		if err := r.relay(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to relay event")
			continue
		}
		sent++
	}

	if len(unsent) > 0 {
		log.Info().Int("fetched", len(unsent)).Int("sent", sent).Msg("processed unsent outbox batch")
	}
	return sent, nil
}

// Stats reports the number of events relayed and when the last one went out.
func (r *Relay) Stats() (uint64, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.published, r.lastSent
}

func (r *Relay) relay(ctx context.Context, event Event) error {
	if err := r.publishWithRetry(ctx, event); err != nil {
		return err
	}

	if err := r.store.MarkSent(ctx, event.ID); err != nil {
		// resent on the next sweep; JetStream drops the duplicate by msg id
		return fmt.Errorf("event %s published but not marked sent: %w", event.ID, err)
	}

	r.mu.Lock()
	r.published++
	r.lastSent = r.clock.Now()
	r.mu.Unlock()

	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Msg("published and marked event as sent")
	return nil
}

func (r *Relay) publishWithRetry(ctx context.Context, event Event) error {
	var lastErr error

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if delay := r.cfg.RetryDelay * time.Duration(attempt); attempt > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.clock.After(delay):
			}
		}

		if err := r.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Error().
				Err(err).
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", r.cfg.MaxRetries+1, lastErr)
}
