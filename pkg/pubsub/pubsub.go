package pubsub

import (
	"context"
	"encoding/json"
)

// Topics published by a session
const (
	// TopicState carries the chart state after every change
	TopicState = "state"
	// TopicWeights carries the regenerated weights
	TopicWeights = "weights"
	// TopicHost carries the filter and selection instructions sent to the host
	TopicHost = "host"
)

// Event types
const (
	EventStateSaved   = "saved"
	EventStateUpdated = "updated"
	EventWeights      = "generated"
	EventFilter       = "filter"
	EventClear        = "clear"
	EventSelect       = "select"
	EventConfirmed    = "confirmed"
)

// Topics lists every topic a client may subscribe to
var Topics = []string{TopicState, TopicWeights, TopicHost}

// ValidTopic reports whether topic is one of Topics
func ValidTopic(topic string) bool {
	for _, t := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic (e.g., "state", "host")
	Type    string          `json:"type"`    // Event type (e.g., "saved", "filter")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events. The channel is
	// closed when the subscription or the publisher is closed.
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic
	// Context cancellation will close the subscription
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// ConfigureTopics applies the buffering used by sessions. Late subscribers
// get the current state and weights and the recent host instructions.
func ConfigureTopics(p *SSEPublisher) {
	p.ConfigureTopic(TopicState, TopicConfig{BufferSize: 1})
	p.ConfigureTopic(TopicWeights, TopicConfig{BufferSize: 1})
	p.ConfigureTopic(TopicHost, TopicConfig{BufferSize: 20, ReplayAll: true})
}
