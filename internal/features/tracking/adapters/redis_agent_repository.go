package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"delivery-tracker/internal/core/cache"
	"delivery-tracker/internal/features/tracking/domain"
)

const agentFixKeyPrefix = "agent_fix:"

// RedisAgentRepository implements ports.AgentLocationRepository on top of
// the cache adapter. Each agent has exactly one fix; the key TTL doubles as
// the staleness bound so expired fixes simply disappear.
type RedisAgentRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisAgentRepository creates a new RedisAgentRepository. ttl bounds how
// long a stored fix stays readable.
func NewRedisAgentRepository(c cache.Cache, ttl time.Duration) *RedisAgentRepository {
	return &RedisAgentRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Save records the latest fix for an agent, replacing any previous one.
func (r *RedisAgentRepository) Save(ctx context.Context, fix domain.AgentFix) error {
	data, err := json.Marshal(fix)
	if err != nil {
		return fmt.Errorf("failed to marshal agent fix: %w", err)
	}

	if err := r.cache.Set(ctx, agentFixKeyPrefix+fix.AgentID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save agent fix: %w", err)
	}

	return nil
}

// Latest returns the most recent fix for the agent, or nil when none is
// stored or the stored fix has expired.
func (r *RedisAgentRepository) Latest(ctx context.Context, agentID string) (*domain.AgentFix, error) {
	data, err := r.cache.Get(ctx, agentFixKeyPrefix+agentID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agent fix: %w", err)
	}

	var fix domain.AgentFix
	if err := json.Unmarshal(data, &fix); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent fix: %w", err)
	}

	return &fix, nil
}
