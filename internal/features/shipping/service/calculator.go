package service

import (
	"math"

	"delivery-tracker/internal/features/shipping/domain"
)

// CostParams holds the rate table for one cost calculation.
type CostParams struct {
	// BaseCost is the flat cost applied to every delivery.
	BaseCost float64
	// CostPerKm is the per-kilometer cost.
	CostPerKm float64
	// MinCost is the lower bound applied when > 0.
	MinCost float64
	// MaxCost is the upper bound applied when > 0.
	MaxCost float64
	// FreeDeliveryThreshold is the cart total at which delivery is free;
	// 0 disables the override.
	FreeDeliveryThreshold float64
}

// CalculateCost converts a distance and order context into a delivery cost.
//
// The cost is base + distance*perKm, clamped to the floor first and the
// ceiling second. A matched zone then applies its multiplier and surcharge
// AFTER the clamp, so a zone can push the final cost outside the configured
// bounds; that matches the behavior merchants have priced around, so it is
// kept. A cart total at or above the free-delivery threshold forces the cost
// to zero regardless of everything else. The result is rounded half-up to
// two decimals.
func CalculateCost(distanceKm float64, p CostParams, zone *domain.DeliveryZone, cartTotal float64) float64 {
	cost := p.BaseCost + distanceKm*p.CostPerKm

	if p.MinCost > 0 {
		cost = math.Max(cost, p.MinCost)
	}
	if p.MaxCost > 0 {
		cost = math.Min(cost, p.MaxCost)
	}

	if zone != nil {
		cost = cost*zone.PriceMultiplier + zone.AdditionalCost
	}

	if p.FreeDeliveryThreshold > 0 && cartTotal >= p.FreeDeliveryThreshold {
		cost = 0
	}

	if cost < 0 {
		cost = 0
	}

	return roundCurrency(cost)
}

// roundCurrency rounds half-up to 2 decimal places. Costs are never
// negative here, so half away from zero is half-up.
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
