package geo

import (
	"math"
	"testing"
)

func TestCoordinateValid(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"lilongwe", Coordinate{-13.9626, 33.7741}, true},
		{"lat upper bound", Coordinate{90, 10}, true},
		{"lat lower bound", Coordinate{-90, 10}, true},
		{"lon bounds", Coordinate{10, -180}, true},
		{"zero sentinel", Coordinate{0, 0}, false},
		{"zero lat only", Coordinate{0, 33.78}, true},
		{"lat out of range", Coordinate{95, 33.78}, false},
		{"lat below range", Coordinate{-90.0001, 33.78}, false},
		{"lon out of range", Coordinate{-13.96, 200, }, false},
		{"nan latitude", Coordinate{math.NaN(), 33.78}, false},
		{"inf longitude", Coordinate{-13.96, math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.want {
				t.Fatalf("Valid(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("-13.9626", "33.7741")
	if err != nil {
		t.Fatalf("ParseCoordinate() error = %v", err)
	}
	if c.Latitude != -13.9626 || c.Longitude != 33.7741 {
		t.Fatalf("ParseCoordinate() = %v", c)
	}

	if _, err := ParseCoordinate("abc", "33.78"); err == nil {
		t.Fatal("ParseCoordinate() accepted non-numeric latitude")
	}
	if _, err := ParseCoordinate("-13.96", ""); err == nil {
		t.Fatal("ParseCoordinate() accepted empty longitude")
	}
	if _, err := ParseCoordinate("NaN", "33.78"); err == nil {
		t.Fatal("ParseCoordinate() accepted NaN latitude")
	}
	if _, err := ParseCoordinate("-13.96", "+Inf"); err == nil {
		t.Fatal("ParseCoordinate() accepted infinite longitude")
	}
}

func TestBoundingBoxClampsToGlobe(t *testing.T) {
	minLat, maxLat, minLon, maxLon := BoundingBox(Coordinate{-13.96, 33.78}, 10)
	if minLat >= maxLat || minLon >= maxLon {
		t.Fatalf("degenerate box: %v %v %v %v", minLat, maxLat, minLon, maxLon)
	}
	if minLat > -13.96 || maxLat < -13.96 || minLon > 33.78 || maxLon < 33.78 {
		t.Fatal("box does not contain center")
	}

	minLat, maxLat, minLon, maxLon = BoundingBox(Coordinate{89.9, 0.1}, 50)
	if minLon != -180 || maxLon != 180 {
		t.Fatalf("polar box should span all longitudes, got %v..%v", minLon, maxLon)
	}
	if maxLat != 90 {
		t.Fatalf("maxLat = %v, want clamp at 90", maxLat)
	}
	_ = minLat
}
