package domain

import (
	"time"

	"delivery-tracker/internal/geo"
)

// AgentFix is the most recent recorded GPS position of a delivery agent.
type AgentFix struct {
	// AgentID identifies the delivery agent.
	AgentID string `json:"agent_id"`
	// Coordinate is the reported position.
	Coordinate geo.Coordinate `json:"coordinate"`
	// AccuracyM is the reported GPS accuracy in meters, 0 when unknown.
	AccuracyM float64 `json:"accuracy_m,omitempty"`
	// RecordedAt is when the position was captured.
	RecordedAt time.Time `json:"recorded_at"`
}

// IsFresh reports whether the fix is recent enough to drive an ETA. Stale
// fixes are treated as absent so a parked phone never produces a live ETA.
func (f AgentFix) IsFresh(maxAge time.Duration, now time.Time) bool {
	return now.Sub(f.RecordedAt) <= maxAge
}
