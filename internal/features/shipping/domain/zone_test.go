package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatchZone_Exact verifies case-insensitive exact matching.
func TestMatchZone_Exact(t *testing.T) {
	zones := []DeliveryZone{
		{PostcodePattern: "12345", PriceMultiplier: 1.5},
	}

	assert.NotNil(t, MatchZone("12345", zones))
	assert.Nil(t, MatchZone("12346", zones))
	assert.Nil(t, MatchZone("123456", zones))

	upper := []DeliveryZone{{PostcodePattern: "SW1A 1AA"}}
	assert.NotNil(t, MatchZone("sw1a 1aa", upper))
}

// TestMatchZone_Wildcard verifies the anchored single-wildcard semantics.
func TestMatchZone_Wildcard(t *testing.T) {
	zones := []DeliveryZone{
		{PostcodePattern: "9000*", PriceMultiplier: 1.2},
	}

	assert.NotNil(t, MatchZone("90001", zones))
	assert.NotNil(t, MatchZone("9000X", zones))
	assert.NotNil(t, MatchZone("9000", zones), "wildcard expands to zero characters")
	assert.Nil(t, MatchZone("8000X", zones))
	assert.Nil(t, MatchZone("19000", zones), "pattern is anchored, not a substring match")
}

// TestMatchZone_WildcardSuffix verifies patterns with a leading wildcard.
func TestMatchZone_WildcardSuffix(t *testing.T) {
	zones := []DeliveryZone{
		{PostcodePattern: "*-y"},
	}

	assert.NotNil(t, MatchZone("north-y", zones))
	assert.Nil(t, MatchZone("north-z", zones))
}

// TestMatchZone_FirstMatchWins verifies the order-dependent tie-break.
func TestMatchZone_FirstMatchWins(t *testing.T) {
	zones := []DeliveryZone{
		{PostcodePattern: "9000*", PriceMultiplier: 1.2},
		{PostcodePattern: "90001", PriceMultiplier: 3.0},
	}

	matched := MatchZone("90001", zones)

	require.NotNil(t, matched)
	// The broad wildcard comes first in list order, so it wins even though
	// the later zone matches exactly.
	assert.Equal(t, 1.2, matched.PriceMultiplier)
}

// TestMatchZone_Empty verifies empty inputs never match.
func TestMatchZone_Empty(t *testing.T) {
	assert.Nil(t, MatchZone("", []DeliveryZone{{PostcodePattern: "*"}}))
	assert.Nil(t, MatchZone("12345", nil))
	assert.Nil(t, MatchZone("12345", []DeliveryZone{{PostcodePattern: ""}}))
}
