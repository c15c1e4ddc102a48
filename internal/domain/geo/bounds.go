package geo

import "math"

const kmPerDegreeLat = 111.0

// BoundingBox returns the lat/lon box spanning radiusKm around center.
// Longitude degrees shrink with latitude; near the poles the box widens to
// the full longitude range rather than dividing by a vanishing cosine.
func BoundingBox(center Coordinate, radiusKm float64) (minLat, maxLat, minLon, maxLon float64) {
	if radiusKm < 0 {
		radiusKm = 0
	}

	latDelta := radiusKm / kmPerDegreeLat
	minLat = math.Max(center.Latitude-latDelta, -90)
	maxLat = math.Min(center.Latitude+latDelta, 90)

	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if cosLat < 0.01 {
		return minLat, maxLat, -180, 180
	}

	lonDelta := radiusKm / (kmPerDegreeLat * cosLat)
	minLon = math.Max(center.Longitude-lonDelta, -180)
	maxLon = math.Min(center.Longitude+lonDelta, 180)
	return minLat, maxLat, minLon, maxLon
}
