package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/shared/constant"
	"roombook/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingExtended      = "booking.extended"
	BookingDeleted       = "booking.deleted"
)

type Event struct {
	Type        string    `json:"type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload,omitempty"`
}

func New(eventType, aggregateID string, payload any) Event {
	return Event{
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  timezone.Now(),
		Payload:     payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type kafkaPublisher struct {
	client  kafka.Client
	topic   string
	enabled bool
	otel    otel.Otel
}

func NewPublisher(cfg *config.Config, client kafka.Client, otl otel.Otel) Publisher {
	return &kafkaPublisher{
		client:  client,
		topic:   cfg.Kafka.Topics.Booking,
		enabled: cfg.Kafka.Enable,
		otel:    otl,
	}
}

// Publish keys the message by aggregate so events of one booking stay ordered.
func (p *kafkaPublisher) Publish(ctx context.Context, evt Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute("event.type", evt.Type)

	if !p.enabled {
		log.Debug().Str("type", evt.Type).Str("id", evt.AggregateID).Msg("event publishing disabled, skipping")

		return nil
	}

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: evt.AggregateID, Value: evt})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}

	return nil
}

// PublishAsync publishes in the background once the request has committed. Failures are only logged.
func PublishAsync(ctx context.Context, publisher Publisher, evt Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := publisher.Publish(c, evt); err != nil {
			log.Error().Err(err).Str("type", evt.Type).Str("id", evt.AggregateID).Msg("failed to publish event")
		}
	}()
}
