package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GaryKam/lets-eat/internal/location"
	"github.com/GaryKam/lets-eat/internal/permission"
	"github.com/GaryKam/lets-eat/internal/selector"
	"github.com/GaryKam/lets-eat/internal/types"
)

var (
	ErrNotFound = errors.New("session not found")
	// ErrReportUnsupported is returned when fixes come from a server-side source
	ErrReportUnsupported = errors.New("session does not accept device location reports")
	ErrEmptyReport       = errors.New("location report must contain a fix or an enabled flag")
)

// Session is one open page: its own permission gate, location cache and selector
type Session struct {
	ID        string
	CreatedAt time.Time

	gate     *permission.Gate
	device   *location.DeviceSource // nil when fixes come from a shared source
	provider *location.Provider
	selector *selector.Selector
	logger   *slog.Logger
}

func (s *Session) Selector() *selector.Selector {
	return s.selector
}

func (s *Session) Provider() *location.Provider {
	return s.provider
}

func (s *Session) PermissionStatus() permission.Status {
	return s.gate.Status()
}

// AcceptsReports reports whether the device pushes its own fixes
func (s *Session) AcceptsReports() bool {
	return s.device != nil
}

// ReportLocation records a device fix and/or the location services switch,
// then refreshes the cached fix when a new one was reported
func (s *Session) ReportLocation(ctx context.Context, fix *types.Coords, enabled *bool) error {
	if s.device == nil {
		return ErrReportUnsupported
	}
	if fix == nil && enabled == nil {
		return ErrEmptyReport
	}

	if enabled != nil {
		s.device.SetEnabled(*enabled)
	}
	if fix == nil {
		return nil
	}
	if err := s.device.Report(*fix); err != nil {
		return err
	}

	if !s.provider.HasPermission() {
		s.logger.Debug("fix recorded before permission was granted")
		return nil
	}
	return s.provider.Refresh(ctx)
}

// SetPermissionGranted applies a permission change made outside a prompt, e.g. in system settings
// A grant refreshes the cached fix from a report recorded while permission was missing.
func (s *Session) SetPermissionGranted(ctx context.Context, granted bool) error {
	if s.device == nil {
		return ErrReportUnsupported
	}
	if !granted {
		s.gate.Revoke()
		return nil
	}

	s.gate.Grant()
	if !s.device.HasFix() {
		return nil
	}
	return s.provider.Refresh(ctx)
}

// RequestPermission opens a permission prompt for this session
func (s *Session) RequestPermission() permission.Request {
	return s.provider.RequestPermission()
}

// ResolvePermission applies the result of a prompt and forwards it to the selector
func (s *Session) ResolvePermission(ctx context.Context, code int, outcome permission.Outcome, permanent bool, radiusUnits int) (permission.Result, selector.Reaction, error) {
	result, err := s.gate.Resolve(code, outcome, permanent)
	if err != nil {
		return permission.Result{}, selector.Reaction{}, err
	}

	if result.Outcome == permission.OutcomeGranted && (s.device == nil || s.device.HasFix()) {
		if err := s.provider.Refresh(ctx); err != nil {
			s.logger.Warn("failed to refresh location after grant", "error", err)
		}
	}

	reaction, err := s.selector.HandlePermissionResult(result, radiusUnits)
	if err != nil {
		return result, selector.Reaction{}, fmt.Errorf("failed to handle permission result: %w", err)
	}
	return result, reaction, nil
}

// FindPlace triggers a search and waits up to timeout for it to settle. On timeout the
// current display is returned along with context.DeadlineExceeded.
func (s *Session) FindPlace(ctx context.Context, radiusUnits int, timeout time.Duration) (types.DisplayState, error) {
	id, err := s.selector.ShowNext(radiusUnits)
	if err != nil {
		return types.DisplayState{}, err
	}
	return s.Await(ctx, id, timeout)
}

// Await waits up to timeout for request id to settle
func (s *Session) Await(ctx context.Context, id uint64, timeout time.Duration) (types.DisplayState, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.selector.Await(ctx, id)
}

func (s *Session) close() {
	s.selector.Close()
}
