package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/GaryKam/lets-eat/internal/permission"
	"github.com/GaryKam/lets-eat/internal/types"
)

var (
	// ErrNoFix is returned when a refresh could not obtain a fix
	ErrNoFix = errors.New("no location fix")
	// ErrUnavailable is returned when permission is missing or location services are off
	ErrUnavailable = errors.New("location unavailable")
)

// Provider caches the last known device location. The cache is only written
// by Refresh; every other component reads it through CurrentLocation.
type Provider struct {
	gate       PermissionGate
	source     FixSource
	fixTimeout time.Duration
	logger     *slog.Logger

	mu   sync.RWMutex
	last *types.Coords
}

// NewProvider creates a provider with an empty cache
func NewProvider(gate PermissionGate, source FixSource, fixTimeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		gate:       gate,
		source:     source,
		fixTimeout: fixTimeout,
		logger:     logger.With("component", "location-provider"),
	}
}

// HasPermission reports whether fine-location permission is granted
func (p *Provider) HasPermission() bool {
	return p.gate.IsGranted()
}

// RequestPermission opens a permission prompt; the result arrives later
// through the permission gate, keyed by the returned request code
func (p *Provider) RequestPermission() permission.Request {
	return p.gate.Request()
}

// IsAvailable reports whether permission is granted and the fix source is enabled
func (p *Provider) IsAvailable() bool {
	return p.HasPermission() && p.source.Enabled()
}

// CurrentLocation returns the cached fix, which may be stale or absent
func (p *Provider) CurrentLocation() (types.Coords, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.last == nil {
		return types.Coords{}, false
	}
	return *p.last, true
}

// Refresh requests a fresh fix. On failure or timeout a previously cached
// value is kept.
func (p *Provider) Refresh(ctx context.Context) error {
	if !p.HasPermission() {
		return fmt.Errorf("failed to refresh location: %w", permission.ErrDenied)
	}
	if !p.source.Enabled() {
		return fmt.Errorf("failed to refresh location: %w", ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, p.fixTimeout)
	defer cancel()

	fix, err := p.source.RequestFix(ctx)
	if err != nil {
		p.logger.Warn("location fix failed", "error", err)
		return fmt.Errorf("%w: %w", ErrNoFix, err)
	}
	if !fix.Valid() {
		p.logger.Warn("location source returned invalid fix",
			"latitude", fix.Latitude,
			"longitude", fix.Longitude,
		)
		return fmt.Errorf("%w: invalid coordinates (%f, %f)", ErrNoFix, fix.Latitude, fix.Longitude)
	}

	p.mu.Lock()
	p.last = &fix
	p.mu.Unlock()

	p.logger.Debug("location refreshed",
		"latitude", fix.Latitude,
		"longitude", fix.Longitude,
	)

	return nil
}
