package domain

import "strings"

// DeliveryZone is a postcode-pattern pricing adjustment region. Zones are
// read-only reference data sourced from configuration or storage; order in
// the zone list is significant.
type DeliveryZone struct {
	// PostcodePattern is a literal postcode or a pattern with a single '*'
	// wildcard (e.g., "9000*").
	PostcodePattern string `json:"postcode_pattern"`
	// PriceMultiplier scales the shipping cost, must be >= 0.
	PriceMultiplier float64 `json:"price_multiplier"`
	// AdditionalCost is a flat surcharge added after the multiplier.
	AdditionalCost float64 `json:"additional_cost"`
}

// MatchZone returns the first zone in list order whose pattern matches the
// postcode, or nil when none matches. First match wins; later zones are
// never preferred even when they also match. An empty postcode or empty
// list never matches.
func MatchZone(postcode string, zones []DeliveryZone) *DeliveryZone {
	if postcode == "" {
		return nil
	}

	for i := range zones {
		if matchesPattern(postcode, zones[i].PostcodePattern) {
			return &zones[i]
		}
	}

	return nil
}

// matchesPattern reports whether a postcode matches a zone pattern.
// Matching is case-insensitive and anchored at both ends; a single '*'
// expands to zero or more characters.
func matchesPattern(postcode, pattern string) bool {
	if pattern == "" {
		return false
	}

	pc := strings.ToLower(postcode)
	pat := strings.ToLower(pattern)

	star := strings.Index(pat, "*")
	if star < 0 {
		return pc == pat
	}

	prefix := pat[:star]
	suffix := pat[star+1:]

	return len(pc) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(pc, prefix) &&
		strings.HasSuffix(pc, suffix)
}
