package selector

import (
	"context"

	"github.com/GaryKam/lets-eat/internal/types"
)

// PlacesSearcher runs a nearby search
type PlacesSearcher interface {
	Search(ctx context.Context, location types.Coords, radiusMeters int, placeType string) ([]types.Place, error)
}

// Locator exposes the cached location fix
type Locator interface {
	IsAvailable() bool
	CurrentLocation() (types.Coords, bool)
}
