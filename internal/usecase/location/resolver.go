package location

import (
	"context"
	"log/slog"
	"time"

	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/domain/geo"
	"tigawane/internal/ports"
)

// FailureMessage is the user-facing text for a submission whose pickup
// location could not be determined.
const FailureMessage = `We couldn't find that pickup location. Enable location services, or enter a more specific address like "Area 25, Lilongwe" (Place, District).`

// ResolutionFailure is the terminal outcome of the pipeline: every step was
// attempted and none produced a usable coordinate. It is the only error
// Resolve ever returns.
type ResolutionFailure struct{}

func (*ResolutionFailure) Error() string { return FailureMessage }

// Input carries one submission's location material. LastKnown is the
// device position cached from an earlier reading, if any. Locator is the
// request-scoped fresh-position collaborator; nil means the platform cannot
// provide one (permission denied, no device).
type Input struct {
	Address   string
	LastKnown *geo.Coordinate
	Locator   ports.DeviceLocator
}

// Resolved is a validated pickup coordinate plus the pipeline step that
// produced it.
type Resolved struct {
	Coordinate geo.Coordinate
	Source     geo.Source
}

// Resolver turns a free-text pickup address into a validated coordinate by
// running an ordered list of strategies: geocode the address, fall back to
// the cached device position, then to a fresh device reading. Each strategy
// gets exactly one attempt per call. Collaborator failures are logged and
// swallowed; only exhausting the whole list surfaces as an error.
type Resolver struct {
	geocoder        ports.Geocoder
	geocodeTimeout  time.Duration
	locationTimeout time.Duration
}

func NewResolver(geocoder ports.Geocoder, geocodeTimeout, locationTimeout time.Duration) *Resolver {
	if geocodeTimeout <= 0 {
		geocodeTimeout = 10 * time.Second
	}
	if locationTimeout <= 0 {
		locationTimeout = 15 * time.Second
	}
	return &Resolver{
		geocoder:        geocoder,
		geocodeTimeout:  geocodeTimeout,
		locationTimeout: locationTimeout,
	}
}

type strategy struct {
	source geo.Source
	locate func(ctx context.Context, in Input) (geo.Coordinate, bool)
}

// Resolve executes the pipeline. It returns either a coordinate that passed
// full validation or a *ResolutionFailure; no other error and no panic
// escape this boundary.
func (r *Resolver) Resolve(ctx context.Context, in Input) (Resolved, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "location.resolver"))

	for _, s := range r.strategies() {
		c, ok := r.attempt(logCtx, s, in)
		if !ok {
			continue
		}
		// Re-check the winning coordinate before handing it out, whichever
		// step produced it.
		if !c.Valid() {
			logging.Warn(logCtx, "strategy produced invalid coordinate",
				slog.String("source", string(s.source)),
				slog.String("coordinate", c.String()))
			continue
		}
		logging.Info(logCtx, "pickup coordinate resolved",
			slog.String("source", string(s.source)),
			slog.String("coordinate", c.String()))
		return Resolved{Coordinate: c, Source: s.source}, nil
	}

	logging.Warn(logCtx, "pickup coordinate resolution exhausted",
		slog.String("address", in.Address))
	return Resolved{}, &ResolutionFailure{}
}

func (r *Resolver) attempt(ctx context.Context, s strategy, in Input) (c geo.Coordinate, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error(ctx, "location strategy panicked",
				slog.String("source", string(s.source)),
				slog.Any("panic", rec))
			c, ok = geo.Coordinate{}, false
		}
	}()
	return s.locate(ctx, in)
}

func (r *Resolver) strategies() []strategy {
	return []strategy{
		{source: geo.SourceGeocoded, locate: r.geocodeAddress},
		{source: geo.SourceCachedDevice, locate: r.cachedDevicePosition},
		{source: geo.SourceFreshDevice, locate: r.freshDevicePosition},
	}
}

func (r *Resolver) geocodeAddress(ctx context.Context, in Input) (geo.Coordinate, bool) {
	if in.Address == "" {
		return geo.Coordinate{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, r.geocodeTimeout)
	defer cancel()

	c, err := r.geocoder.Geocode(callCtx, in.Address)
	if err != nil {
		logging.Warn(ctx, "geocode attempt failed",
			slog.String("address", in.Address),
			slog.Any("err", err))
		return geo.Coordinate{}, false
	}
	if !c.Valid() {
		logging.Warn(ctx, "geocoder returned out-of-range or sentinel coordinate",
			slog.String("address", in.Address),
			slog.String("coordinate", c.String()))
		return geo.Coordinate{}, false
	}
	return c, true
}

func (r *Resolver) cachedDevicePosition(_ context.Context, in Input) (geo.Coordinate, bool) {
	if in.LastKnown == nil || !in.LastKnown.Valid() {
		return geo.Coordinate{}, false
	}
	return *in.LastKnown, true
}

func (r *Resolver) freshDevicePosition(ctx context.Context, in Input) (geo.Coordinate, bool) {
	if in.Locator == nil {
		return geo.Coordinate{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, r.locationTimeout)
	defer cancel()

	c, err := in.Locator.CurrentPosition(callCtx)
	if err != nil {
		logging.Warn(ctx, "fresh device position unavailable", slog.Any("err", err))
		return geo.Coordinate{}, false
	}
	if !c.Valid() {
		logging.Warn(ctx, "device position out of range",
			slog.String("coordinate", c.String()))
		return geo.Coordinate{}, false
	}
	return c, true
}
