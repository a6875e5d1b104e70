package order

import (
	"context"
	"log"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/checkout"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

// CartClearer empties a restaurant's cart after a successful order.
type CartClearer interface {
	Clear(restaurantID string)
}

// HistoryRecorder persists placed orders for the history screen.
type HistoryRecorder interface {
	Record(ctx context.Context, userID string, payload *checkout.OrderPayload, rcpt *Receipt) error
}

// EventPublisher announces placed orders downstream.
type EventPublisher interface {
	PublishPlaced(ctx context.Context, userID string, payload *checkout.OrderPayload, rcpt *Receipt) error
}

// Service drives order placement: submit to the sink with one automatic
// retry on network failure, then clear the cart, record history and
// publish the event. The cart is touched only after the sink has accepted
// the order, so a failed submission leaves everything in place for a
// manual retry.
type Service struct {
	sink    Sink
	carts   CartClearer
	history HistoryRecorder
	events  EventPublisher
}

func NewService(sink Sink, carts CartClearer, history HistoryRecorder, events EventPublisher) *Service {
	return &Service{
		sink:    sink,
		carts:   carts,
		history: history,
		events:  events,
	}
}

func (s *Service) PlaceOrder(ctx context.Context, userID string, payload *checkout.OrderPayload) (*Receipt, error) {
	rcpt, err := s.sink.Submit(ctx, payload)
	if err != nil && remote.IsNetworkError(err) {
		// One automatic retry with the same idempotency token. The server
		// dedups, so at worst this re-acks the first attempt.
		log.Printf("order submit failed, retrying once: %v", err)
		rcpt, err = s.sink.Submit(ctx, payload)
	}
	if err != nil {
		return nil, err
	}

	s.carts.Clear(payload.RestaurantID)

	// The order is placed; history and events must not undo that.
	if errRec := s.history.Record(ctx, userID, payload, rcpt); errRec != nil {
		log.Printf("order history record error: %v", errRec)
	}
	if errPub := s.events.PublishPlaced(ctx, userID, payload, rcpt); errPub != nil {
		log.Printf("order event publish error: %v", errPub)
	}

	return rcpt, nil
}
