package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scorepool/go/internal/outbox"
)

// ConsumerConfig configures the durable JetStream consumer
type ConsumerConfig struct {
	Stream        outbox.JetStreamConfig
	ConsumerName  string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
}

func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Stream:        outbox.DefaultJetStreamConfig(),
		ConsumerName:  "scorepool-gateway",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
	}
}

// Broadcaster receives translated notifications
type Broadcaster interface {
	BroadcastToLeague(leagueID uuid.UUID, n *Notification)
}

// EventConsumer reads relayed outbox events and pushes notifications to
// league subscribers.
type EventConsumer struct {
	broadcaster Broadcaster
	nc          *nats.Conn
	js          jetstream.JetStream
	consumer    jetstream.Consumer
	config      ConsumerConfig
}

func NewEventConsumer(ctx context.Context, b Broadcaster, config ConsumerConfig) (*EventConsumer, error) {
	nc, err := outbox.Connect(config.Stream, "scorepool-gateway")
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	ec := &EventConsumer{broadcaster: b, nc: nc, js: js, config: config}
	if err := ec.ensureConsumer(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure consumer: %w", err)
	}
	return ec, nil
}

func (ec *EventConsumer) ensureConsumer(ctx context.Context) error {
	stream, err := ec.js.Stream(ctx, ec.config.Stream.StreamName)
	if err != nil {
		return fmt.Errorf("get stream: %w", err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          ec.config.ConsumerName,
		Durable:       ec.config.ConsumerName,
		Description:   "Score pool websocket gateway",
		FilterSubject: ec.config.Stream.SubjectPrefix + ".>",
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    ec.config.MaxDeliver,
		AckWait:       ec.config.AckWait,
		MaxAckPending: ec.config.MaxAckPending,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	log.Info().
		Str("consumer", ec.config.ConsumerName).
		Str("stream", ec.config.Stream.StreamName).
		Msg("JetStream consumer ready")
	ec.consumer = consumer
	return nil
}

// Start consumes until ctx is done.
func (ec *EventConsumer) Start(ctx context.Context) error {
	messageCh := make(chan jetstream.Msg, 100)

	consumeCtx, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		select {
		case messageCh <- msg:
		case <-ctx.Done():
			msg.Nak()
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event consumer shutting down")
			return nil
		case msg := <-messageCh:
			if err := Dispatch(ec.broadcaster, msg.Data()); err != nil {
				// malformed messages will not get better on redelivery
				log.Error().Err(err).Str("subject", msg.Subject()).Msg("dropping undecodable event")
				if termErr := msg.Term(); termErr != nil {
					log.Error().Err(termErr).Msg("failed to terminate message")
				}
				continue
			}
			if ackErr := msg.Ack(); ackErr != nil {
				log.Error().Err(ackErr).Msg("failed to ACK message")
			}
		}
	}
}

// Dispatch decodes one relayed envelope and broadcasts its notifications.
func Dispatch(b Broadcaster, data []byte) error {
	var env outbox.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}

	routed, err := Translate(env)
	if err != nil {
		return err
	}
	for _, r := range routed {
		b.BroadcastToLeague(r.LeagueID, r.Notification)
	}

	log.Debug().
		Str("event_id", env.EventID).
		Str("event_type", env.EventType).
		Int("leagues", len(routed)).
		Msg("event dispatched")
	return nil
}

// Connected reports whether the NATS connection is up
func (ec *EventConsumer) Connected() bool {
	return ec.nc != nil && ec.nc.IsConnected()
}

func (ec *EventConsumer) Stop() {
	if ec.nc != nil {
		ec.nc.Close()
	}
}
