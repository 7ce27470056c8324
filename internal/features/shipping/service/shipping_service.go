package service

import (
	"context"
	"errors"
	"fmt"

	"delivery-tracker/internal/core/config"
	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/core/routing"
	"delivery-tracker/internal/features/shipping/domain"
	"delivery-tracker/internal/features/shipping/ports"
	"delivery-tracker/internal/geo"

	"go.uber.org/zap"
)

var (
	// ErrOutOfRange is returned when the customer is beyond the configured
	// delivery radius; no rate is available, which is not the same as a
	// zero-cost rate.
	ErrOutOfRange = errors.New("delivery address is out of range")
	// ErrNoDestination is returned when the request carries neither
	// coordinates nor a resolvable address.
	ErrNoDestination = errors.New("no destination coordinates or address")
)

// QuoteRequest describes one checkout-time shipping calculation.
type QuoteRequest struct {
	// Postcode is the customer's postcode, used for zone matching.
	Postcode string `json:"postcode"`
	// CartTotal is the order subtotal, used for the free-delivery override.
	CartTotal float64 `json:"cart_total"`
	// Lat and Lng are the customer coordinates, when the storefront has
	// them. Both must be set together.
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
	// Address is the customer street address, geocoded when coordinates
	// are absent.
	Address string `json:"address,omitempty"`
}

// ShippingService computes delivery quotes from the restaurant origin.
type ShippingService struct {
	cfg      config.ShippingConfig
	origin   geo.Coordinate
	resolver *routing.Resolver
	provider routing.RouteProvider
	zones    ports.ZoneRepository
}

// NewShippingService creates a ShippingService. The provider may be nil when
// no routing service is configured; quotes then require explicit coordinates
// and use great-circle distances.
func NewShippingService(
	cfg config.ShippingConfig,
	origin geo.Coordinate,
	resolver *routing.Resolver,
	provider routing.RouteProvider,
	zones ports.ZoneRepository,
) *ShippingService {
	return &ShippingService{
		cfg:      cfg,
		origin:   origin,
		resolver: resolver,
		provider: provider,
		zones:    zones,
	}
}

// Quote resolves the customer location, obtains a distance and produces a
// ShippingQuote. Returns ErrOutOfRange when the delivery radius is exceeded
// and geo.ErrInvalidCoordinate for out-of-range latitude/longitude input.
func (s *ShippingService) Quote(ctx context.Context, req QuoteRequest) (*domain.ShippingQuote, error) {
	customer, err := s.destination(ctx, req)
	if err != nil {
		return nil, err
	}

	distanceKm, method, err := s.resolver.Resolve(ctx, routing.MethodRoutingService, s.origin, *customer)
	if err != nil {
		return nil, err
	}

	if s.cfg.MaxDistanceKm > 0 && distanceKm > s.cfg.MaxDistanceKm {
		return nil, fmt.Errorf("%w: %.1f km exceeds %.1f km limit", ErrOutOfRange, distanceKm, s.cfg.MaxDistanceKm)
	}

	zone := s.matchZone(ctx, req.Postcode)

	cost := CalculateCost(distanceKm, CostParams{
		BaseCost:              s.cfg.BaseCost,
		CostPerKm:             s.cfg.CostPerKm,
		MinCost:               s.cfg.MinCost,
		MaxCost:               s.cfg.MaxCost,
		FreeDeliveryThreshold: s.cfg.FreeDeliveryThreshold,
	}, zone, req.CartTotal)

	return &domain.ShippingQuote{
		DistanceKm:        distanceKm,
		Cost:              cost,
		CalculationMethod: method,
		ZoneApplied:       zone,
	}, nil
}

// destination produces validated customer coordinates from the request,
// geocoding the street address when no coordinates were supplied.
func (s *ShippingService) destination(ctx context.Context, req QuoteRequest) (*geo.Coordinate, error) {
	if req.Lat != nil && req.Lng != nil {
		coord := geo.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
		if err := coord.Validate(); err != nil {
			return nil, err
		}
		return &coord, nil
	}

	if req.Address == "" || s.provider == nil || !s.provider.IsEnabled() {
		return nil, ErrNoDestination
	}

	coord, err := s.provider.Geocode(ctx, req.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDestination, err)
	}

	return coord, nil
}

// matchZone loads the zone list and matches the postcode against it. A zone
// store failure degrades to quoting without a zone adjustment.
func (s *ShippingService) matchZone(ctx context.Context, postcode string) *domain.DeliveryZone {
	if s.zones == nil {
		return nil
	}

	zones, err := s.zones.List(ctx)
	if err != nil {
		logger.Get().Warn("Zone lookup failed, quoting without zone adjustment",
			zap.String("postcode", postcode),
			zap.Error(err),
		)
		return nil
	}

	return domain.MatchZone(postcode, zones)
}
