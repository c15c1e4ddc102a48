package location

import (
	"context"
	"errors"

	"tigawane/internal/domain/geo"
	"tigawane/internal/ports"
)

var errNoReading = errors.New("no device reading supplied")

// StaticLocator adapts a position the caller already holds (a browser
// geolocation reading forwarded in the request, or CLI flags) to the
// DeviceLocator port.
type StaticLocator struct {
	Position geo.Coordinate
}

var _ ports.DeviceLocator = StaticLocator{}

func (l StaticLocator) CurrentPosition(context.Context) (geo.Coordinate, error) {
	if l.Position == (geo.Coordinate{}) {
		return geo.Coordinate{}, errNoReading
	}
	return l.Position, nil
}
