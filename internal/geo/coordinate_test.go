package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCoordinate_Validate_Valid verifies in-range coordinates pass.
func TestCoordinate_Validate_Valid(t *testing.T) {
	valid := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		{Lat: 6.2442, Lng: -75.5812},
	}

	for _, c := range valid {
		assert.NoError(t, c.Validate())
		assert.True(t, c.IsValid())
	}
}

// TestCoordinate_Validate_OutOfRange verifies out-of-range components fail
// with ErrInvalidCoordinate.
func TestCoordinate_Validate_OutOfRange(t *testing.T) {
	invalid := []Coordinate{
		{Lat: 90.0001, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 180.5},
		{Lat: 0, Lng: -181},
	}

	for _, c := range invalid {
		err := c.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
		assert.False(t, c.IsValid())
	}
}
