// Package event announces booking lifecycle changes to the rest of the system.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

const (
	TypeCreated  = "booking.created"
	TypeUpdated  = "booking.updated"
	TypeDeleted  = "booking.deleted"
	TypeReleased = "booking.released"
)

var published = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hotel",
	Name:      "booking_events_total",
	Help:      "Booking lifecycle events, by type.",
}, []string{"type"})

type Event struct {
	Type         string    `json:"type"`
	BookingID    string    `json:"booking_id"`
	RoomID       string    `json:"room_id"`
	CustomerName string    `json:"customer_name"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	Actor        string    `json:"actor"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func FromBooking(eventType string, booking model.Booking, actor string) Event {
	return Event{
		Type:         eventType,
		BookingID:    booking.ID,
		RoomID:       booking.RoomID,
		CustomerName: booking.CustomerName,
		CheckInDate:  booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate: booking.CheckOutDate.Format(constant.DateOnlyFormat),
		Actor:        actor,
		OccurredAt:   timezone.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// New publishes to Kafka when it is enabled and only counts events otherwise.
func New(cfg *config.Config, client kafka.Client) Publisher {
	if !cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, booking events are not published")

		return noopPublisher{}
	}

	return &kafkaPublisher{client: client, topic: cfg.Kafka.Topic.Booking}
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(events))
	for i, e := range events {
		messages[i] = kafka.Message{Key: e.BookingID, Value: e}
	}

	if err := p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish booking events: %w", err)
	}

	count(events)

	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, events ...Event) error {
	count(events)

	return nil
}

func count(events []Event) {
	for _, e := range events {
		published.WithLabelValues(e.Type).Inc()
	}
}
