package domain

import (
	orderdomain "delivery-tracker/internal/features/orders/domain"
)

// Delivery stage keys, in fixed workflow order.
const (
	StageReceived       = "received"
	StagePreparing      = "preparing"
	StageReadyForPickup = "ready-for-pickup"
	StageOutForDelivery = "out-for-delivery"
	StageDelivered      = "delivered"
)

// stages is the fixed restaurant workflow progression.
var stages = []struct {
	key   string
	label string
}{
	{StageReceived, "Order received"},
	{StagePreparing, "Preparing"},
	{StageReadyForPickup, "Ready for pickup"},
	{StageOutForDelivery, "Out for delivery"},
	{StageDelivered, "Delivered"},
}

// StatusMilestone is one entry of the delivery status timeline.
type StatusMilestone struct {
	// StatusKey is the stage identifier.
	StatusKey string `json:"status_key"`
	// Label is the customer-facing stage name.
	Label string `json:"label"`
	// Completed reports whether the order has reached this stage.
	Completed bool `json:"completed"`
	// Timestamp is the recorded time for this stage, empty when the store
	// never recorded one.
	Timestamp string `json:"timestamp,omitempty"`
}

// StageForStatus maps a normalized order status to its stage key. Cancelled
// orders map to the received stage; regression is not a modeled case.
func StageForStatus(status orderdomain.OrderStatus) string {
	return stages[stageIndex(status)].key
}

func stageIndex(status orderdomain.OrderStatus) int {
	switch status {
	case orderdomain.OrderStatusProcessing:
		return 1
	case orderdomain.OrderStatusReadyForPickup:
		return 2
	case orderdomain.OrderStatusOutForDelivery:
		return 3
	case orderdomain.OrderStatusDelivered:
		return 4
	default:
		// pending and cancelled both sit at the start of the workflow
		return 0
	}
}

// BuildTimeline maps the order's current status onto the fixed stage
// progression. Completion is monotonic: every stage up to and including the
// current one is completed. Timestamps are copied only for stages present in
// the input; gaps are preserved, never backfilled.
func BuildTimeline(status orderdomain.OrderStatus, timestamps map[string]string) []StatusMilestone {
	current := stageIndex(status)

	timeline := make([]StatusMilestone, 0, len(stages))
	for i, stage := range stages {
		timeline = append(timeline, StatusMilestone{
			StatusKey: stage.key,
			Label:     stage.label,
			Completed: i <= current,
			Timestamp: timestamps[stage.key],
		})
	}

	return timeline
}
