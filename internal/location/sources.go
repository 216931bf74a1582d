package location

import (
	"context"
	"errors"
	"sync"

	"github.com/GaryKam/lets-eat/internal/types"
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// DeviceSource serves fixes reported by the client device
type DeviceSource struct {
	mu      sync.Mutex
	latest  *types.Coords
	enabled bool
	updated chan struct{} // closed and replaced on every report
}

// NewDeviceSource creates an enabled source with no fix yet
func NewDeviceSource() *DeviceSource {
	return &DeviceSource{
		enabled: true,
		updated: make(chan struct{}),
	}
}

// Report records a fix from the device and wakes pending RequestFix calls
func (d *DeviceSource) Report(fix types.Coords) error {
	if fix.Latitude < -90 || fix.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if fix.Longitude < -180 || fix.Longitude > 180 {
		return ErrInvalidLongitude
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest = &fix
	close(d.updated)
	d.updated = make(chan struct{})
	return nil
}

// SetEnabled records whether the device has location services turned on
func (d *DeviceSource) SetEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enabled
}

func (d *DeviceSource) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// HasFix reports whether the device has reported at least one fix
func (d *DeviceSource) HasFix() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest != nil
}

// RequestFix returns the newest reported fix, waiting for one if none has arrived yet
func (d *DeviceSource) RequestFix(ctx context.Context) (types.Coords, error) {
	for {
		d.mu.Lock()
		if d.latest != nil {
			fix := *d.latest
			d.mu.Unlock()
			return fix, nil
		}
		updated := d.updated
		d.mu.Unlock()

		select {
		case <-updated:
		case <-ctx.Done():
			return types.Coords{}, ctx.Err()
		}
	}
}

// StaticSource always reports the same configured position
type StaticSource struct {
	fix types.Coords
}

func NewStaticSource(fix types.Coords) *StaticSource {
	return &StaticSource{fix: fix}
}

func (s *StaticSource) Enabled() bool {
	return true
}

func (s *StaticSource) RequestFix(ctx context.Context) (types.Coords, error) {
	if err := ctx.Err(); err != nil {
		return types.Coords{}, err
	}
	return s.fix, nil
}
