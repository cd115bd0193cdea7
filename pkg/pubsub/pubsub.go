package pubsub

import (
	"context"
	"encoding/json"
)

// Topics published by the analysis pipeline.
const (
	// TopicStatus carries coarse pipeline state (scanning, analyzing, ready).
	TopicStatus = "analysis_status"
	// TopicStatistics carries aggregate counts after each completed run.
	TopicStatistics = "statistics"
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic (e.g., "analysis_status", "statistics")
	Type    string          `json:"type"`    // Event type (e.g., "scanning", "analyzing", "updated")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
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

// AnalysisStatus describes where the pipeline currently is. Published on
// TopicStatus so a freshly connected client can render progress right away.
type AnalysisStatus struct {
	State   string `json:"state"`   // scanning, fetching, analyzing, ready
	Message string `json:"message"` // Human-readable status message
	Step    int    `json:"step"`    // Current step number (1-based)
	Total   int    `json:"total"`   // Total number of steps
}

// StatisticsData summarizes a completed run. Published on TopicStatistics.
type StatisticsData struct {
	PathwaysCount int  `json:"pathways_count"`
	NodesCount    int  `json:"nodes_count"`
	EdgesCount    int  `json:"edges_count"`
	ErrorsCount   int  `json:"errors_count"`
	Complete      bool `json:"complete"` // True once the whole batch has been processed
}
