package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

type HealthStatus struct {
	Healthy           bool      `json:"healthy"`
	EventsProcessed   uint64    `json:"events_processed"`
	LastEventTime     time.Time `json:"last_event_time"`
	PendingEvents     int64     `json:"pending_events"`
	DatabaseConnected bool      `json:"database_connected"`
	NATSConnected     bool      `json:"nats_connected"`
	Errors            []string  `json:"errors"`
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

// HealthChecker reports relay health over HTTP.
type HealthChecker struct {
	relay         *Relay
	db            Pinger
	pending       PendingCounter
	natsConnected func() bool
	clock         clockwork.Clock
	threshold     time.Duration // pending events older than this with no progress is unhealthy
	maxPending    int64
}

func NewHealthChecker(relay *Relay, db Pinger, pending PendingCounter, natsConnected func() bool, clock clockwork.Clock, threshold time.Duration) *HealthChecker {
	return &HealthChecker{
		relay:         relay,
		db:            db,
		pending:       pending,
		natsConnected: natsConnected,
		clock:         clock,
		threshold:     threshold,
		maxPending:    1000,
	}
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Healthy: true,
		Errors:  []string{},
	}

	status.EventsProcessed, status.LastEventTime = h.relay.Stats()

	if err := h.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
	} else {
		status.DatabaseConnected = true
	}

	status.NATSConnected = h.natsConnected()
	if !status.NATSConnected {
		status.Healthy = false
		status.Errors = append(status.Errors, "NATS disconnected")
	}

	if status.DatabaseConnected {
		pending, err := h.pending.CountPending(ctx)
		if err != nil {
			status.Errors = append(status.Errors, fmt.Sprintf("failed to count pending events: %v", err))
		} else {
			status.PendingEvents = pending
			if pending > h.maxPending {
				status.Errors = append(status.Errors, fmt.Sprintf("high pending event count: %d", pending))
			}
		}
	}

	if status.PendingEvents > 0 && !status.LastEventTime.IsZero() {
		if idle := h.clock.Since(status.LastEventTime); idle > h.threshold {
			status.Healthy = false
			status.Errors = append(status.Errors, fmt.Sprintf("no events processed for %s", idle))
		}
	}

	return status
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Error().Err(err).Msg("failed to write health response")
	}
}
