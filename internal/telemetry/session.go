package telemetry

import (
	"context"
	"log"
	"time"
)

// Publisher is the sink for session events. Satisfied by rabbitmq.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// SessionEmitter publishes session lifecycle and event-drop telemetry.
type SessionEmitter struct {
	publisher   Publisher
	routingKey  string
	service     string
	environment string
}

// SessionEnvelope is the versioned wire shape of a session event.
type SessionEnvelope struct {
	SchemaVersion int    `json:"schema_version"`
	EventType     string `json:"event_type"`
	EventName     string `json:"event_name"`
	OccurredAt    string `json:"occurred_at"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	RoomID        string `json:"room_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// NewSessionEmitter constructs a SessionEmitter.
func NewSessionEmitter(publisher Publisher, routingKey, service, environment string) *SessionEmitter {
	return &SessionEmitter{
		publisher:   publisher,
		routingKey:  routingKey,
		service:     service,
		environment: environment,
	}
}

// Emit publishes one session event. A nil emitter or publisher is a no-op so
// callers never have to guard.
func (e *SessionEmitter) Emit(ctx context.Context, eventName, roomID, reason string) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := SessionEnvelope{
		SchemaVersion: 1,
		EventType:     "session_events",
		EventName:     eventName,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RoomID:        roomID,
		Reason:        reason,
	}

	if err := e.publisher.Publish(ctx, e.routingKey, envelope); err != nil {
		log.Printf("session event publish failed: %v", err)
	}
}
