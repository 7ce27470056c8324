package domain

import (
	"testing"

	orderdomain "delivery-tracker/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildTimeline_OutForDelivery verifies monotonic completion up to the
// current stage.
func TestBuildTimeline_OutForDelivery(t *testing.T) {
	timeline := BuildTimeline(orderdomain.OrderStatusOutForDelivery, nil)

	require.Len(t, timeline, 5)

	assert.True(t, timeline[0].Completed)  // received
	assert.True(t, timeline[1].Completed)  // preparing
	assert.True(t, timeline[2].Completed)  // ready-for-pickup
	assert.True(t, timeline[3].Completed)  // out-for-delivery
	assert.False(t, timeline[4].Completed) // delivered
}

// TestBuildTimeline_StageOrder verifies the fixed progression order.
func TestBuildTimeline_StageOrder(t *testing.T) {
	timeline := BuildTimeline(orderdomain.OrderStatusPending, nil)

	keys := make([]string, 0, len(timeline))
	for _, m := range timeline {
		keys = append(keys, m.StatusKey)
	}

	assert.Equal(t, []string{
		StageReceived,
		StagePreparing,
		StageReadyForPickup,
		StageOutForDelivery,
		StageDelivered,
	}, keys)
}

// TestBuildTimeline_Delivered verifies a terminal order completes every stage.
func TestBuildTimeline_Delivered(t *testing.T) {
	timeline := BuildTimeline(orderdomain.OrderStatusDelivered, nil)

	for _, m := range timeline {
		assert.True(t, m.Completed, "stage %s", m.StatusKey)
	}
}

// TestBuildTimeline_Pending verifies only the first stage completes.
func TestBuildTimeline_Pending(t *testing.T) {
	timeline := BuildTimeline(orderdomain.OrderStatusPending, nil)

	assert.True(t, timeline[0].Completed)
	for _, m := range timeline[1:] {
		assert.False(t, m.Completed, "stage %s", m.StatusKey)
	}
}

// TestBuildTimeline_TimestampsPreserved verifies timestamps are copied for
// recorded stages only, with gaps preserved.
func TestBuildTimeline_TimestampsPreserved(t *testing.T) {
	timestamps := map[string]string{
		StageReceived:       "2026-08-30T18:02:11",
		StageOutForDelivery: "2026-08-30T18:40:05",
	}

	timeline := BuildTimeline(orderdomain.OrderStatusOutForDelivery, timestamps)

	assert.Equal(t, "2026-08-30T18:02:11", timeline[0].Timestamp)
	// preparing and ready-for-pickup completed but were never recorded
	assert.Empty(t, timeline[1].Timestamp)
	assert.Empty(t, timeline[2].Timestamp)
	assert.Equal(t, "2026-08-30T18:40:05", timeline[3].Timestamp)
	assert.Empty(t, timeline[4].Timestamp)
}

// TestStageForStatus verifies the status to stage mapping.
func TestStageForStatus(t *testing.T) {
	assert.Equal(t, StageReceived, StageForStatus(orderdomain.OrderStatusPending))
	assert.Equal(t, StagePreparing, StageForStatus(orderdomain.OrderStatusProcessing))
	assert.Equal(t, StageReadyForPickup, StageForStatus(orderdomain.OrderStatusReadyForPickup))
	assert.Equal(t, StageOutForDelivery, StageForStatus(orderdomain.OrderStatusOutForDelivery))
	assert.Equal(t, StageDelivered, StageForStatus(orderdomain.OrderStatusDelivered))
	assert.Equal(t, StageReceived, StageForStatus(orderdomain.OrderStatusCancelled))
}
