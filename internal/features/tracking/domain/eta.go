package domain

// Confidence tags an ETA with the reliability of its data source.
type Confidence string

const (
	// ConfidenceHigh marks an ETA from a live agent position and a routing
	// service route.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium marks a great-circle estimate from live coordinates.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow marks a status-based guess with no usable coordinates.
	ConfidenceLow Confidence = "low"
)

// ETAResult is the best-available delivery time estimate.
type ETAResult struct {
	// ETAMinutes is the numeric estimate; nil for status-only fallbacks
	// and delivered orders.
	ETAMinutes *int `json:"eta_minutes,omitempty"`
	// ETALabel is the customer-facing estimate text.
	ETALabel string `json:"eta_label"`
	// DistanceKm is the remaining distance when coordinates were available.
	DistanceKm *float64 `json:"distance_km,omitempty"`
	// Confidence indicates which data source produced the estimate.
	Confidence Confidence `json:"confidence"`
}
