// Package messaging provides typed publish and consume helpers on top of
// watermill. Producers get one Publish function per event type; consumers run
// behind a router with panic recovery and bounded redelivery.
package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends one typed event. Implementations are bound to a single topic.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a typed publish function to a topic. The topic also
// travels in message metadata for consumers that inspect streams directly.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("topic", topic)

		if err := publisher.Publish(topic, msg); err != nil {
			return fmt.Errorf("publish %s event: %w", topic, err)
		}

		return nil
	}
}

// Bus owns the outbound publisher so its lifecycle can be managed in one
// place while any number of typed publish functions are derived from it.
type Bus struct {
	publisher message.Publisher
}

// NewBus creates a bus around a watermill publisher.
func NewBus(publisher message.Publisher) *Bus {
	return &Bus{publisher: publisher}
}

// PublishOn derives a typed publish function for a topic from the bus.
func PublishOn[T any](bus *Bus, topic string) Publish[T] {
	return NewPublishFunc[T](bus.publisher, topic)
}

// Shutdown closes the underlying publisher.
func (b *Bus) Shutdown() error {
	return b.publisher.Close()
}
