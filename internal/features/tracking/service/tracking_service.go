package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"delivery-tracker/internal/core/config"
	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/core/routing"
	orderdomain "delivery-tracker/internal/features/orders/domain"
	orderservice "delivery-tracker/internal/features/orders/service"
	"delivery-tracker/internal/features/tracking/domain"
	"delivery-tracker/internal/features/tracking/ports"
	"delivery-tracker/internal/geo"

	"go.uber.org/zap"
)

// TrackingService assembles the customer-facing tracking view: the stage
// timeline, the best-available ETA and the live courier position.
type TrackingService struct {
	orders   *orderservice.OrderService
	agents   ports.AgentLocationRepository
	resolver *routing.Resolver
	origin   geo.Coordinate
	cfg      config.TrackingConfig

	// now is swappable for tests.
	now func() time.Time
}

// NewTrackingService creates a new TrackingService. origin is the restaurant
// location, used for distance display when no live position exists.
func NewTrackingService(
	orders *orderservice.OrderService,
	agents ports.AgentLocationRepository,
	resolver *routing.Resolver,
	origin geo.Coordinate,
	cfg config.TrackingConfig,
) *TrackingService {
	return &TrackingService{
		orders:   orders,
		agents:   agents,
		resolver: resolver,
		origin:   origin,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Track returns the full tracking view for an order. The email must match
// the order record, mirroring the order lookup guard.
func (s *TrackingService) Track(ctx context.Context, orderID, email string) (*domain.DeliveryTracking, error) {
	order, err := s.orders.GetOrder(orderID, email)
	if err != nil {
		return nil, err
	}

	tracking := &domain.DeliveryTracking{
		OrderID:  order.ID,
		Status:   order.Status,
		Timeline: domain.BuildTimeline(order.Status, order.StageTimes),
		ETA:      s.EstimateETA(ctx, order),
	}

	if fix := s.freshFix(ctx, order.AgentID); fix != nil && order.DropOff != nil {
		tracking.Agent = &domain.AgentPosition{
			Coordinate:     fix.Coordinate,
			DistanceKm:     geo.HaversineKm(fix.Coordinate, *order.DropOff),
			BearingDegrees: geo.BearingDegrees(fix.Coordinate, *order.DropOff),
			RecordedAt:     fix.RecordedAt,
		}
	}

	return tracking, nil
}

// EstimateETA produces the best-available delivery estimate for an order,
// degrading from live routing data down to a status-based guess. It never
// fails; missing data only lowers the confidence.
//
// The fallback chain itself is keyed purely on what data is usable. The
// out-for-delivery gate below is input-assembly policy: before that status
// the courier's position says nothing about this order, so the fix is not
// offered to the chain at all.
func (s *TrackingService) EstimateETA(ctx context.Context, order *orderdomain.Order) domain.ETAResult {
	if order.Status == orderdomain.OrderStatusDelivered {
		return domain.ETAResult{
			ETALabel:   "Delivered",
			Confidence: domain.ConfidenceLow,
		}
	}

	// the live chain only applies while the courier is actually driving
	if order.Status == orderdomain.OrderStatusOutForDelivery && order.DropOff != nil {
		if fix := s.freshFix(ctx, order.AgentID); fix != nil {
			return s.liveEstimate(ctx, fix.Coordinate, *order.DropOff)
		}
	}

	result := domain.ETAResult{
		ETALabel:   statusLabel(order.Status),
		Confidence: domain.ConfidenceLow,
	}

	// without a live position the restaurant is still a useful distance anchor
	if order.DropOff != nil {
		dist := geo.HaversineKm(s.origin, *order.DropOff)
		result.DistanceKm = &dist
	}

	return result
}

// liveEstimate computes an ETA from the courier's current position,
// preferring the routing provider's driving duration.
func (s *TrackingService) liveEstimate(ctx context.Context, from, to geo.Coordinate) domain.ETAResult {
	route, err := s.resolver.DrivingRoute(ctx, from, to)
	if err == nil && route != nil {
		minutes := int(math.Round(route.DurationMinutes))
		dist := route.DistanceKm
		return domain.ETAResult{
			ETAMinutes: &minutes,
			ETALabel:   route.DurationText,
			DistanceKm: &dist,
			Confidence: domain.ConfidenceHigh,
		}
	}

	dist := geo.HaversineKm(from, to)
	minutes := geo.ETAMinutesFromDistance(dist, s.cfg.AvgSpeedKmh)
	return domain.ETAResult{
		ETAMinutes: &minutes,
		ETALabel:   fmt.Sprintf("%d minutes", minutes),
		DistanceKm: &dist,
		Confidence: domain.ConfidenceMedium,
	}
}

// RecordLocation stores a fresh GPS fix for an agent. The coordinate is
// validated before it can ever reach distance math.
func (s *TrackingService) RecordLocation(ctx context.Context, agentID string, coord geo.Coordinate, accuracyM float64) error {
	if err := coord.Validate(); err != nil {
		return err
	}

	fix := domain.AgentFix{
		AgentID:    agentID,
		Coordinate: coord,
		AccuracyM:  accuracyM,
		RecordedAt: s.now(),
	}

	return s.agents.Save(ctx, fix)
}

// freshFix returns the agent's latest fix when it is recent enough to trust,
// nil otherwise. Lookup failures degrade to nil so tracking still renders.
func (s *TrackingService) freshFix(ctx context.Context, agentID string) *domain.AgentFix {
	if agentID == "" || s.agents == nil {
		return nil
	}

	fix, err := s.agents.Latest(ctx, agentID)
	if err != nil {
		logger.Get().Warn("Failed to load agent fix, continuing without live position",
			zap.String("agent_id", agentID),
			zap.Error(err),
		)
		return nil
	}
	if fix == nil {
		return nil
	}

	maxAge := time.Duration(s.cfg.AgentFixTTLMinutes) * time.Minute
	if !fix.IsFresh(maxAge, s.now()) {
		return nil
	}
	if err := fix.Coordinate.Validate(); err != nil {
		return nil
	}

	return fix
}

// statusLabel maps a workflow state to the customer-facing wait estimate
// shown when no usable coordinates exist.
func statusLabel(status orderdomain.OrderStatus) string {
	switch status {
	case orderdomain.OrderStatusReadyForPickup:
		return "10-15 minutes"
	case orderdomain.OrderStatusOutForDelivery:
		return "5-10 minutes"
	case orderdomain.OrderStatusCancelled:
		return "Cancelled"
	default:
		return "20-30 minutes"
	}
}
