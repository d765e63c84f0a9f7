package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LOGIN_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeLoginRecorded = "LOGIN_RECORDED"

// NewLoginRecorded builds the event emitted after a successful login. The
// formatted audit timestamp travels with the event so the row reflects the
// login time, not the time it was written.
func NewLoginRecorded(username, auditTimestamp string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeLoginRecorded,
		Data: map[string]interface{}{
			"username":  username,
			"timestamp": auditTimestamp,
		},
		OccurredAt: occurredAt,
	}
}
