package permission

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrDenied is returned by operations that need location permission when it is not granted
	ErrDenied = errors.New("location permission denied")
	// ErrUnknownRequest is returned when a result carries a request code that is not pending
	ErrUnknownRequest = errors.New("unknown permission request code")
)

// Status is the current state of the fine-location permission
type Status string

const (
	StatusNotDetermined     Status = "not_determined"
	StatusGranted           Status = "granted"
	StatusDenied            Status = "denied"
	StatusPermanentlyDenied Status = "permanently_denied"
)

// Outcome is what the permission dialog reported back
type Outcome string

const (
	OutcomeGranted     Outcome = "granted"
	OutcomeDenied      Outcome = "denied"
	OutcomeInterrupted Outcome = "interrupted" // dialog dismissed without an answer
)

// ParseOutcome converts a client supplied outcome string
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeGranted, OutcomeDenied, OutcomeInterrupted:
		return o, nil
	default:
		return "", fmt.Errorf("invalid permission outcome %q", s)
	}
}

// Request is an open permission prompt. Code is zero when no prompt is needed
// because the permission is already granted.
type Request struct {
	Code           int  `json:"requestCode"`
	AlreadyGranted bool `json:"alreadyGranted"`
}

// Result is the answer to a Request, tagged with the request code it resolves
type Result struct {
	RequestCode         int     `json:"requestCode"`
	Outcome             Outcome `json:"outcome"`
	ShouldShowRationale bool    `json:"shouldShowRationale"`
}

// Gate tracks the runtime permission of one session.
// A first denial still allows a rationale; a second denial, or one flagged
// as "don't ask again", is permanent.
type Gate struct {
	mu       sync.Mutex
	status   Status
	nextCode int
	pending  map[int]struct{}
	logger   *slog.Logger
}

// NewGate creates a gate in the not-determined state
func NewGate(logger *slog.Logger) *Gate {
	return &Gate{
		status:  StatusNotDetermined,
		pending: make(map[int]struct{}),
		logger:  logger.With("component", "permission-gate"),
	}
}

// NewGrantedGate creates a gate whose permission is already granted.
// Used for fix sources that need no runtime prompt.
func NewGrantedGate(logger *slog.Logger) *Gate {
	g := NewGate(logger)
	g.status = StatusGranted
	return g
}

// Status returns the current permission status
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// IsGranted reports whether fine-location permission is granted
func (g *Gate) IsGranted() bool {
	return g.Status() == StatusGranted
}

// ShouldShowRationale reports whether an explanation may be shown before asking again
func (g *Gate) ShouldShowRationale() bool {
	return g.Status() == StatusDenied
}

// Request opens a prompt and returns its request code
func (g *Gate) Request() Request {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == StatusGranted {
		return Request{AlreadyGranted: true}
	}

	g.nextCode++
	code := g.nextCode
	g.pending[code] = struct{}{}

	g.logger.Debug("permission requested", "request_code", code, "status", g.status)

	return Request{Code: code}
}

// Resolve applies the dialog outcome for a pending request.
// permanent marks a denial as "don't ask again".
func (g *Gate) Resolve(code int, outcome Outcome, permanent bool) (Result, error) {
	if _, err := ParseOutcome(string(outcome)); err != nil {
		return Result{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.pending[code]; !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownRequest, code)
	}
	delete(g.pending, code)

	switch outcome {
	case OutcomeGranted:
		g.status = StatusGranted
	case OutcomeDenied:
		if permanent || g.status == StatusDenied || g.status == StatusPermanentlyDenied {
			g.status = StatusPermanentlyDenied
		} else {
			g.status = StatusDenied
		}
	case OutcomeInterrupted:
		// status is unchanged
	}

	g.logger.Debug("permission resolved",
		"request_code", code,
		"outcome", outcome,
		"status", g.status,
	)

	return Result{
		RequestCode:         code,
		Outcome:             outcome,
		ShouldShowRationale: g.status == StatusDenied,
	}, nil
}

// Grant records a grant made outside a prompt, e.g. from system settings
func (g *Gate) Grant() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = StatusGranted
}

// Revoke records a revocation made from system settings
func (g *Gate) Revoke() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == StatusGranted {
		g.status = StatusNotDetermined
	}
}
