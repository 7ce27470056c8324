package domain

import "delivery-tracker/internal/core/routing"

// ShippingQuote is the immutable result of one shipping calculation.
type ShippingQuote struct {
	// DistanceKm is the resolved restaurant-to-customer distance.
	DistanceKm float64 `json:"distance_km"`
	// Cost is the final delivery cost, rounded to 2 decimal places.
	Cost float64 `json:"cost"`
	// CalculationMethod records how the distance was obtained.
	CalculationMethod routing.Method `json:"calculation_method"`
	// ZoneApplied is the matched pricing zone, if any.
	ZoneApplied *DeliveryZone `json:"zone_applied,omitempty"`
}
