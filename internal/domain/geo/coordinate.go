package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Source records which step of the pickup-location pipeline produced a
// coordinate. Used for logging and telemetry only, never for branching.
type Source string

const (
	SourceGeocoded     Source = "geocoded"
	SourceCachedDevice Source = "gps-cached"
	SourceFreshDevice  Source = "gps-fresh"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether the coordinate can be attached to an item.
//
// Both components must be finite, latitude within [-90, 90] and longitude
// within [-180, 180]. Exactly (0, 0) is rejected: several geocoders return
// it as a "no result" sentinel, so it must not pass as a legitimate match
// for the equator/prime-meridian intersection.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return false
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return false
	}
	if c.Latitude == 0 && c.Longitude == 0 {
		return false
	}
	return true
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// ParseCoordinate coerces textual latitude/longitude (the usual shape of
// geocoder JSON payloads) into a Coordinate. Values that do not parse to a
// finite number are rejected before any range check runs.
func ParseCoordinate(lat, lon string) (Coordinate, error) {
	latitude, err := parseFinite(lat)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse latitude %q: %w", lat, err)
	}
	longitude, err := parseFinite(lon)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse longitude %q: %w", lon, err)
	}
	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}
