// Package geo provides pure great-circle distance, bearing and speed-based
// ETA helpers. All functions are side-effect free and safe for concurrent use.
package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	EarthRadiusKm = 6371.0
	// DefaultSpeedKmh is the assumed average courier speed in city traffic.
	DefaultSpeedKmh = 30.0
)

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// HaversineKm returns the great-circle distance between two points in
// kilometers. Symmetric in its arguments; returns 0 for identical points.
func HaversineKm(a, b Coordinate) float64 {
	lat1Rad := degreesToRadians(a.Lat)
	lat2Rad := degreesToRadians(b.Lat)
	deltaLat := degreesToRadians(b.Lat - a.Lat)
	deltaLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// BearingDegrees returns the initial compass bearing from a to b,
// normalized to [0, 360).
func BearingDegrees(a, b Coordinate) float64 {
	lat1Rad := degreesToRadians(a.Lat)
	lat2Rad := degreesToRadians(b.Lat)
	deltaLng := degreesToRadians(b.Lng - a.Lng)

	y := math.Sin(deltaLng) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) -
		math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLng)

	bearing := math.Atan2(y, x) * 180 / math.Pi

	return math.Mod(bearing+360, 360)
}

// ETAMinutesFromDistance converts a distance into whole minutes of travel at
// the given average speed, rounded to the nearest minute. A non-positive
// speed yields 0 rather than dividing by zero.
func ETAMinutesFromDistance(distanceKm, avgSpeedKmh float64) int {
	if avgSpeedKmh <= 0 {
		return 0
	}
	return int(math.Round(distanceKm / avgSpeedKmh * 60))
}
