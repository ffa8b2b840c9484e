package services

import "context"

// OrderPlacedRoutingKey is the routing key of events published after checkout.
const OrderPlacedRoutingKey = "order.placed"

// EventPublisher delivers domain events to a broker. Payloads are JSON encoded by the
// implementation.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
