package domain

import "time"

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification durations used by the gateway.
const (
	StatusNotificationDuration  = 3 * time.Second
	ExecuteNotificationDuration = 5 * time.Second
)

// Notification is a transient, non-blocking message for the user.
type Notification struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Severity    Severity      `json:"severity"`
	Duration    time.Duration `json:"duration"`
	Closable    bool          `json:"closable"`
}

// OutcomeStatus is the result class of a backend call.
type OutcomeStatus string

const (
	OutcomeReady       OutcomeStatus = "ready"       // status check succeeded
	OutcomeUnavailable OutcomeStatus = "unavailable" // status check failed
	OutcomeAccepted    OutcomeStatus = "accepted"    // execution accepted (2xx)
	OutcomeRejected    OutcomeStatus = "rejected"    // execution answered non-2xx
	OutcomeFailed      OutcomeStatus = "failed"      // execution never reached the backend
)

// Outcome is what a backend call surfaces to the caller.
// Failures are carried in Err instead of being returned as Go errors.
type Outcome struct {
	Status       OutcomeStatus     `json:"status"`
	Notification Notification      `json:"notification"`
	HTTPStatus   int               `json:"http_status,omitempty"`
	Request      *ExecutionRequest `json:"request,omitempty"`
	Err          error             `json:"-"`
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o.Status == OutcomeReady || o.Status == OutcomeAccepted
}

// GateState is the edit/execute gate of the editor.
type GateState string

const (
	GateLocked   GateState = "locked"
	GateUnlocked GateState = "unlocked"
)
