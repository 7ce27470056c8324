package geo

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinate is returned when a latitude/longitude pair is outside
// the valid WGS84 ranges.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
type Coordinate struct {
	// Lat is the latitude in decimal degrees, valid range [-90, 90].
	Lat float64 `json:"lat"`
	// Lng is the longitude in decimal degrees, valid range [-180, 180].
	Lng float64 `json:"lng"`
}

// Validate checks that both components are within range.
// Out-of-range values are rejected, never clamped.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, c.Lng)
	}
	return nil
}

// IsValid reports whether both components pass range validation.
func (c Coordinate) IsValid() bool {
	return c.Validate() == nil
}

// Point is a Coordinate with an optional human-readable label, used for
// restaurant and customer locations.
type Point struct {
	Coordinate
	// Label is an optional address or place name.
	Label string `json:"label,omitempty"`
}
