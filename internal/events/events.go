// Package events fan-outs gate and detection activity to an optional
// message broker so downstream consumers (dashboards, alerting) can react
// without polling the API. Publishing is best-effort: the request path
// never fails because a broker is down.
package events

import "context"

const (
	// AccessChannel carries access_history inserts.
	AccessChannel = "access-events"
	// DetectionChannel carries detection_history inserts.
	DetectionChannel = "detection-events"
	// UnknownPlateChannel carries unknown-plate sightings.
	UnknownPlateChannel = "unknown-plate-events"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Publisher wraps a backend with a stable API.
type Publisher struct {
	backend Backend
}

// New constructs a Publisher for the provided backend.
func New(backend Backend) *Publisher {
	return &Publisher{backend: backend}
}

// Publish sends a message to the named channel.
func (p *Publisher) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return p.backend.Publish(ctx, channel, data, attrs)
}

// Subscribe consumes messages from the named channel.
func (p *Publisher) Subscribe(ctx context.Context, channel string, handler Handler) error {
	return p.backend.Subscribe(ctx, channel, handler)
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	return p.backend.Close()
}
