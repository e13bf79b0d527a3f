package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Config holds gateway settings
type Config struct {
	Connection ConnectionConfig
	Consumer   ConsumerConfig
}

func DefaultConfig() Config {
	return Config{
		Connection: DefaultConnectionConfig(),
		Consumer:   DefaultConsumerConfig(),
	}
}

// Service ties the JetStream consumer to the websocket subscribers
type Service struct {
	connections *ConnectionManager
	handler     *WebSocketHandler
	consumer    *EventConsumer
}

func NewService(ctx context.Context, config Config, members MembershipChecker, clock clockwork.Clock) (*Service, error) {
	connections := NewConnectionManager(config.Connection, clock)

	consumer, err := NewEventConsumer(ctx, connections, config.Consumer)
	if err != nil {
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}

	return &Service{
		connections: connections,
		handler:     NewWebSocketHandler(connections, members),
		consumer:    consumer,
	}, nil
}

// Start blocks until ctx is done.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting standings gateway")

	go s.connections.Start(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- s.consumer.Start(ctx) }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			s.consumer.Stop()
			return err
		}
	}

	s.consumer.Stop()
	log.Info().Msg("standings gateway stopped")
	return nil
}

func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
}

// Healthy reports whether notifications can still arrive
func (s *Service) Healthy() bool {
	return s.consumer.Connected()
}
