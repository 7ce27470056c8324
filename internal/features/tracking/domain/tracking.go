package domain

import (
	"time"

	orderdomain "delivery-tracker/internal/features/orders/domain"
	"delivery-tracker/internal/geo"
)

// AgentPosition is the live courier position relative to the drop-off point.
type AgentPosition struct {
	// Coordinate is the agent's last reported position.
	Coordinate geo.Coordinate `json:"coordinate"`
	// DistanceKm is the remaining great-circle distance to the drop-off.
	DistanceKm float64 `json:"distance_km"`
	// BearingDegrees is the initial bearing from the agent to the drop-off,
	// for map arrow rendering.
	BearingDegrees float64 `json:"bearing_degrees"`
	// RecordedAt is when the position was captured.
	RecordedAt time.Time `json:"recorded_at"`
}

// DeliveryTracking is the full customer-facing tracking view of an order.
type DeliveryTracking struct {
	// OrderID is the tracked order.
	OrderID string `json:"order_id"`
	// Status is the normalized delivery workflow state.
	Status orderdomain.OrderStatus `json:"status"`
	// Timeline is the fixed stage progression with completion flags.
	Timeline []StatusMilestone `json:"timeline"`
	// ETA is the best-available delivery estimate.
	ETA ETAResult `json:"eta"`
	// Agent is the live courier position; nil when no fresh fix exists or
	// the order has no drop-off coordinate.
	Agent *AgentPosition `json:"agent,omitempty"`
}
