package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/checkout"
)

const placedTopic = "order-placed"

// placedEvent is the wire shape flowing to downstream consumers
// (receipt mailer, restaurant dashboard).
type placedEvent struct {
	OrderID      string    `json:"order_id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	TotalCents   int64     `json:"total_cents"`
	Method       string    `json:"method"`
	PlacedAt     time.Time `json:"placed_at"`
}

// KafkaPublisher publishes order-placed events.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  placedTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishPlaced(ctx context.Context, userID string, payload *checkout.OrderPayload, rcpt *Receipt) error {
	event := placedEvent{
		OrderID:      rcpt.OrderID,
		UserID:       userID,
		RestaurantID: payload.RestaurantID,
		TotalCents:   int64(payload.Totals.GrandTotal),
		Method:       string(payload.Delivery.Method),
		PlacedAt:     payload.CreatedAt,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(rcpt.OrderID), // order_id for partition ordering
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
