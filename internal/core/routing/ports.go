package routing

import (
	"context"

	"delivery-tracker/internal/geo"
)

// Method identifies how a distance was obtained.
type Method string

const (
	// MethodHaversine marks a great-circle estimate.
	MethodHaversine Method = "haversine"
	// MethodRoutingService marks a driving distance from the routing provider.
	MethodRoutingService Method = "routing_service"
)

// RouteResult holds a driving distance and duration reported by a routing
// provider.
type RouteResult struct {
	// DistanceKm is the driving distance in kilometers.
	DistanceKm float64 `json:"distance_km"`
	// DurationMinutes is the estimated driving time in minutes.
	DurationMinutes float64 `json:"duration_minutes"`
	// DurationText is a human-readable duration (e.g., "23 min").
	DurationText string `json:"duration_text"`
	// DistanceText is a human-readable distance (e.g., "12.3 km").
	DistanceText string `json:"distance_text"`
}

// RouteProvider is the secondary port for an external routing service.
// Implementations may be slow or unavailable; callers must treat failures
// as recoverable and fall back to great-circle math.
type RouteProvider interface {
	// IsEnabled reports whether the provider is configured and usable.
	IsEnabled() bool
	// DrivingDistance returns the driving route between two points, or an
	// error when no route could be obtained.
	DrivingDistance(ctx context.Context, from, to geo.Coordinate) (*RouteResult, error)
	// Geocode resolves a street address to a coordinate.
	Geocode(ctx context.Context, address string) (*geo.Coordinate, error)
}
