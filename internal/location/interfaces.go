package location

import (
	"context"

	"github.com/GaryKam/lets-eat/internal/permission"
	"github.com/GaryKam/lets-eat/internal/types"
)

// FixSource is the platform location service
type FixSource interface {
	// Enabled reports whether the source can currently produce fixes (GPS or network provider on)
	Enabled() bool
	// RequestFix asks for a one-shot fix and blocks until one arrives or ctx is done
	RequestFix(ctx context.Context) (types.Coords, error)
}

// PermissionGate is the runtime permission the provider depends on
type PermissionGate interface {
	IsGranted() bool
	Request() permission.Request
}
