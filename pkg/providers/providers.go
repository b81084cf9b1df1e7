// Package providers defines the external collaborator interfaces the
// suggestion service depends on. Implementations live in the provider
// package; tests supply fakes.
package providers

import (
	"context"

	"github.com/ExudusTech/bolao-engine/results"
)

// ResultProvider fetches official lottery draw results.
type ResultProvider interface {
	// GetDraw returns the result of one contest of a lottery modality.
	GetDraw(ctx context.Context, lottery string, contest int) (*results.Draw, error)
}

// EventPublisher publishes domain events. Implementations must be safe to
// call concurrently; a nil publisher disables events.
type EventPublisher interface {
	SendMessage(topic string, key string, value interface{}) error
}
