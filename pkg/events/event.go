package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "analysis.RUN_COMPLETED").
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

const (
	TypeRunCompleted = "analysis.RUN_COMPLETED"
	TypeRunFailed    = "analysis.RUN_FAILED"
)

// NewRunCompleted records a pipeline run that committed its artifact set.
func NewRunCompleted(runId, userId, action string, durationMs int64) BaseEvent {
	return BaseEvent{
		Type: TypeRunCompleted,
		Data: map[string]interface{}{
			"run_id":      runId,
			"user_id":     userId,
			"action":      action,
			"duration_ms": durationMs,
		},
		OccurredAt: time.Now(),
	}
}

// NewRunFailed records a pipeline run that ended in FAILED.
func NewRunFailed(runId, userId, action, kind, reason string) BaseEvent {
	return BaseEvent{
		Type: TypeRunFailed,
		Data: map[string]interface{}{
			"run_id":  runId,
			"user_id": userId,
			"action":  action,
			"kind":    kind,
			"reason":  reason,
		},
		OccurredAt: time.Now(),
	}
}
