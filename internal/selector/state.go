package selector

import "fmt"

// State is the phase of the most recent "show next place" trigger
type State int

const (
	StateIdle State = iota
	StateLocating
	StateSearching
	StateDisplaying
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocating:
		return "locating"
	case StateSearching:
		return "searching"
	case StateDisplaying:
		return "displaying"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("unknown (%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventKind is a one-off UI notification
type EventKind string

const (
	// EventLocationUnavailable asks the view for a transient notice
	EventLocationUnavailable EventKind = "location_unavailable"
	// EventPermissionRationale asks the view to explain why location is needed
	EventPermissionRationale EventKind = "permission_rationale"
)

// Event is queued for the view until drained
type Event struct {
	Kind        EventKind `json:"kind"`
	RequestID   uint64    `json:"requestId,omitempty"`
	RequestCode int       `json:"requestCode,omitempty"`
}

// Reaction describes what a permission result caused
type Reaction struct {
	RationaleShown bool   `json:"rationaleShown"`
	RequestID      uint64 `json:"requestId,omitempty"` // set when a search was triggered
}
