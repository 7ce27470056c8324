package routing

import (
	"context"

	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/geo"

	"go.uber.org/zap"
)

// Resolver obtains a distance between two coordinate pairs, preferring the
// routing provider and falling back to great-circle distance. A nil provider
// is valid and always resolves via Haversine.
type Resolver struct {
	provider RouteProvider
}

// NewResolver creates a Resolver over an optional RouteProvider.
func NewResolver(provider RouteProvider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve returns the distance in kilometers between from and to, tagged with
// the method actually used. Routing failures are recovered locally by falling
// back to Haversine; only invalid coordinates produce an error.
func (r *Resolver) Resolve(ctx context.Context, method Method, from, to geo.Coordinate) (float64, Method, error) {
	if err := from.Validate(); err != nil {
		return 0, "", err
	}
	if err := to.Validate(); err != nil {
		return 0, "", err
	}

	if method == MethodRoutingService {
		if route := r.drivingRoute(ctx, from, to); route != nil {
			return route.DistanceKm, MethodRoutingService, nil
		}
	}

	return geo.HaversineKm(from, to), MethodHaversine, nil
}

// DrivingRoute returns the provider's route between two points, or nil when
// the provider is absent, disabled or failing. Coordinates are validated
// before any provider call.
func (r *Resolver) DrivingRoute(ctx context.Context, from, to geo.Coordinate) (*RouteResult, error) {
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}
	return r.drivingRoute(ctx, from, to), nil
}

func (r *Resolver) drivingRoute(ctx context.Context, from, to geo.Coordinate) *RouteResult {
	if r.provider == nil || !r.provider.IsEnabled() {
		return nil
	}

	route, err := r.provider.DrivingDistance(ctx, from, to)
	if err != nil {
		logger.Get().Debug("Routing provider failed, falling back to haversine",
			zap.Error(err),
		)
		return nil
	}

	return route
}
