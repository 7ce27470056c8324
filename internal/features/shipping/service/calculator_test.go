package service

import (
	"testing"

	"delivery-tracker/internal/features/shipping/domain"

	"github.com/stretchr/testify/assert"
)

var baseParams = CostParams{
	BaseCost:  5.00,
	CostPerKm: 1.50,
	MinCost:   3.00,
	MaxCost:   25.00,
}

// TestCalculateCost_BaseFormula verifies base + per-km within bounds.
func TestCalculateCost_BaseFormula(t *testing.T) {
	// 5 + 10*1.5 = 20, within [3, 25]
	assert.Equal(t, 20.00, CalculateCost(10, baseParams, nil, 0))
}

// TestCalculateCost_MinClamp verifies the floor applies before the ceiling.
func TestCalculateCost_MinClamp(t *testing.T) {
	p := baseParams
	p.BaseCost = 0
	p.CostPerKm = 0.5

	// 0 + 1*0.5 = 0.5, raised to min 3
	assert.Equal(t, 3.00, CalculateCost(1, p, nil, 0))
}

// TestCalculateCost_MaxClamp verifies the ceiling.
func TestCalculateCost_MaxClamp(t *testing.T) {
	p := baseParams
	p.MaxCost = 15.00

	// raw 20 clamped to 15
	assert.Equal(t, 15.00, CalculateCost(10, p, nil, 0))
}

// TestCalculateCost_DisabledClamps verifies zero bounds disable clamping.
func TestCalculateCost_DisabledClamps(t *testing.T) {
	p := CostParams{BaseCost: 1, CostPerKm: 1}

	assert.Equal(t, 41.00, CalculateCost(40, p, nil, 0))
	assert.Equal(t, 1.00, CalculateCost(0, p, nil, 0))
}

// TestCalculateCost_ZoneAppliedAfterClamp verifies the zone adjustment runs
// after the min/max clamp and may push the cost outside the bounds.
func TestCalculateCost_ZoneAppliedAfterClamp(t *testing.T) {
	p := baseParams
	p.MaxCost = 15.00

	zone := &domain.DeliveryZone{
		PostcodePattern: "9000*",
		PriceMultiplier: 1.2,
		AdditionalCost:  2,
	}

	// raw 20 clamped to 15, then 15*1.2+2 = 20, above the 15 ceiling
	assert.Equal(t, 20.00, CalculateCost(10, p, zone, 0))
}

// TestCalculateCost_FreeDelivery verifies the cart-total override wins over
// everything, including zone surcharges.
func TestCalculateCost_FreeDelivery(t *testing.T) {
	p := baseParams
	p.FreeDeliveryThreshold = 50

	zone := &domain.DeliveryZone{PriceMultiplier: 2, AdditionalCost: 10}

	assert.Equal(t, 0.00, CalculateCost(10, p, zone, 50))
	assert.Equal(t, 0.00, CalculateCost(10, p, zone, 120))
	// below the threshold the zone still applies: 20*2+10 = 50
	assert.Equal(t, 50.00, CalculateCost(10, p, zone, 49.99))
}

// TestCalculateCost_FreeDeliveryDisabled verifies a zero threshold never
// grants free delivery.
func TestCalculateCost_FreeDeliveryDisabled(t *testing.T) {
	assert.Equal(t, 20.00, CalculateCost(10, baseParams, nil, 1000))
}

// TestCalculateCost_Rounding verifies currency rounding to 2 decimals.
func TestCalculateCost_Rounding(t *testing.T) {
	p := CostParams{BaseCost: 1, CostPerKm: 0.333}

	// 1 + 3.7*0.333 = 2.2321 -> 2.23
	assert.Equal(t, 2.23, CalculateCost(3.7, p, nil, 0))
	// 1 + 5.5*0.333 = 2.8315 -> 2.83; half-up case: 2.835 -> 2.84
	assert.Equal(t, 2.84, CalculateCost(0, CostParams{BaseCost: 2.835}, nil, 0))
}

// TestCalculateCost_NegativeGuard verifies a zone discount can not drive the
// cost below zero.
func TestCalculateCost_NegativeGuard(t *testing.T) {
	zone := &domain.DeliveryZone{PriceMultiplier: 0, AdditionalCost: -5}

	assert.Equal(t, 0.00, CalculateCost(10, baseParams, zone, 0))
}
