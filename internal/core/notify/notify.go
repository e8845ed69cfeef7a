// Package notify holds the single transient notification slot that surfaces
// the outcome of interop actions to the user.
package notify

import (
	"fmt"
	"time"
)

// Severity represents the tone of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists every severity in display order.
var Severities = []Severity{SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// ParseSeverity converts a string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.Valid() {
		return "", fmt.Errorf("unknown severity %q (want success, error, warning or info)", s)
	}
	return sev, nil
}

// Record is one transient message shown to the user. ID changes for every
// published record and is used as the display key of the snackbar.
type Record struct {
	ID        string
	Severity  Severity
	Message   string
	CreatedAt time.Time
}

// EventKind identifies a coordinator state transition.
type EventKind int

const (
	EventPublished EventKind = iota
	EventClosed
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventPublished:
		return "published"
	case EventClosed:
		return "closed"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every transition. Record is the
// record the transition applied to.
type Event struct {
	Kind   EventKind
	Record Record
	Open   bool
}

// Subscriber is a callback invoked on every coordinator transition.
type Subscriber func(Event)
