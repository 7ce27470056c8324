package ports

import (
	"context"

	"delivery-tracker/internal/features/tracking/domain"
)

// AgentLocationRepository is the secondary port for delivery agent GPS fixes.
type AgentLocationRepository interface {
	// Save records the latest fix for an agent, replacing any previous one.
	Save(ctx context.Context, fix domain.AgentFix) error
	// Latest returns the most recent fix for the agent, or nil when the
	// agent has no usable fix on record.
	Latest(ctx context.Context, agentID string) (*domain.AgentFix, error)
}
