package ports

import (
	"context"

	"delivery-tracker/internal/features/shipping/domain"
)

// ZoneRepository is the secondary port for the ordered delivery zone list.
// Implementations must preserve list order; it is the zone tie-break.
type ZoneRepository interface {
	// List returns all zones in match order. An empty store yields an
	// empty slice, not an error.
	List(ctx context.Context) ([]domain.DeliveryZone, error)
	// Replace overwrites the stored zone list.
	Replace(ctx context.Context, zones []domain.DeliveryZone) error
}
