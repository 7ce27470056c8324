package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"delivery-tracker/internal/core/cache"
	"delivery-tracker/internal/features/shipping/domain"
)

const zoneListKey = "delivery_zones"

// RedisZoneRepository implements ports.ZoneRepository on top of the cache
// adapter. The whole list is stored as one JSON array so match order
// survives round-trips.
type RedisZoneRepository struct {
	cache cache.Cache
}

// NewRedisZoneRepository creates a new RedisZoneRepository.
func NewRedisZoneRepository(c cache.Cache) *RedisZoneRepository {
	return &RedisZoneRepository{
		cache: c,
	}
}

// List returns the stored zones in match order.
func (r *RedisZoneRepository) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	data, err := r.cache.Get(ctx, zoneListKey)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return []domain.DeliveryZone{}, nil
		}
		return nil, fmt.Errorf("failed to get zones from cache: %w", err)
	}
	if data == nil {
		return []domain.DeliveryZone{}, nil
	}

	var zones []domain.DeliveryZone
	if err := json.Unmarshal(data, &zones); err != nil {
		return nil, fmt.Errorf("failed to unmarshal zones: %w", err)
	}

	return zones, nil
}

// Replace overwrites the stored zone list. Zones never expire; they change
// only when re-seeded.
func (r *RedisZoneRepository) Replace(ctx context.Context, zones []domain.DeliveryZone) error {
	data, err := json.Marshal(zones)
	if err != nil {
		return fmt.Errorf("failed to marshal zones: %w", err)
	}

	if err := r.cache.Set(ctx, zoneListKey, data, 0); err != nil {
		return fmt.Errorf("failed to save zones to cache: %w", err)
	}

	return nil
}

// ParseZones decodes the DELIVERY_ZONES configuration value. Used to seed
// the repository at boot.
func ParseZones(raw string) ([]domain.DeliveryZone, error) {
	if strings.TrimSpace(raw) == "" {
		return []domain.DeliveryZone{}, nil
	}

	var zones []domain.DeliveryZone
	if err := json.Unmarshal([]byte(raw), &zones); err != nil {
		return nil, fmt.Errorf("failed to parse delivery zones JSON: %w", err)
	}

	for _, z := range zones {
		if z.PriceMultiplier < 0 {
			return nil, fmt.Errorf("zone %q has negative price multiplier", z.PostcodePattern)
		}
	}

	return zones, nil
}
