package ports

import (
	"context"
	"errors"

	"tigawane/internal/domain/geo"
)

// ErrNoGeocodeResult is returned when the geocoding service found no match
// for the given address text.
var ErrNoGeocodeResult = errors.New("no geocode result for address")

// Geocoder converts free-text address input into a coordinate. The service
// is treated as unreliable; callers must be prepared for any error and must
// still validate the returned coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinate, error)
}

// DeviceLocator produces the device's current position. Implementations are
// request-scoped: the HTTP API binds one to the client-submitted device
// reading, the CLI binds one to flags. Denied or unavailable readings are
// reported as errors.
type DeviceLocator interface {
	CurrentPosition(ctx context.Context) (geo.Coordinate, error)
}
