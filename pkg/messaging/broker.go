package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Event is the payload published for every entity change.
type Event struct {
	Type       string      `json:"type"`
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id"`
	Payload    interface{} `json:"payload,omitempty"`
}

// Event types
const (
	EventCreated           = "created"
	EventUpdated           = "updated"
	EventStatusTransition  = "status_transition"
	EventInventoryConsumed = "inventory_consumed"
)

// Channel is the pub/sub channel entity change events go out on.
const Channel = "hospital.records"
