package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"delivery-tracker/internal/core/cache"
	"delivery-tracker/internal/core/config"
	"delivery-tracker/internal/core/httpclient"
	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/geo"

	"go.uber.org/zap"
)

const geocodeCachePrefix = "geocode:"

// OpenRouteAdapter implements RouteProvider using the OpenRouteService API.
// Geocoding results are cached because restaurant and repeat-customer
// addresses rarely change.
type OpenRouteAdapter struct {
	client       *http.Client
	config       config.RoutingConfig
	geocodeCache cache.Cache
}

// NewOpenRouteAdapter creates an OpenRouteAdapter. The geocode cache is
// optional; pass nil to disable caching.
func NewOpenRouteAdapter(cfg config.RoutingConfig, geocodeCache cache.Cache) *OpenRouteAdapter {
	return &OpenRouteAdapter{
		client:       httpclient.NewClient(10 * time.Second),
		config:       cfg,
		geocodeCache: geocodeCache,
	}
}

// IsEnabled reports whether the adapter is configured for use.
func (a *OpenRouteAdapter) IsEnabled() bool {
	return a.config.Enabled && a.config.APIKey != ""
}

// directionsResponse mirrors the GeoJSON shape of /v2/directions.
type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				// Distance is in meters.
				Distance float64 `json:"distance"`
				// Duration is in seconds.
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// DrivingDistance fetches a driving route between two points.
func (a *OpenRouteAdapter) DrivingDistance(ctx context.Context, from, to geo.Coordinate) (*RouteResult, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/driving-car", a.config.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create directions request: %w", err)
	}
	req.Header.Set("Authorization", a.config.APIKey)
	req.Header.Set("Accept", "application/json")

	// OpenRouteService expects lng,lat ordering.
	q := req.URL.Query()
	q.Set("start", fmt.Sprintf("%f,%f", from.Lng, from.Lat))
	q.Set("end", fmt.Sprintf("%f,%f", to.Lng, to.Lat))
	req.URL.RawQuery = q.Encode()

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions request returned status: %d", resp.StatusCode)
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return nil, fmt.Errorf("no route found between %v and %v", from, to)
	}

	summary := decoded.Features[0].Properties.Summary
	distanceKm := summary.Distance / 1000
	durationMin := summary.Duration / 60

	return &RouteResult{
		DistanceKm:      distanceKm,
		DurationMinutes: durationMin,
		DurationText:    formatDuration(durationMin),
		DistanceText:    fmt.Sprintf("%.1f km", distanceKm),
	}, nil
}

// geocodeResponse mirrors the GeoJSON shape of /geocode/search.
type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a street address to a coordinate, consulting the cache
// before calling the API.
func (a *OpenRouteAdapter) Geocode(ctx context.Context, address string) (*geo.Coordinate, error) {
	normalized := normalizeAddress(address)
	if normalized == "" {
		return nil, fmt.Errorf("address must be non-empty")
	}

	if cached := a.cachedCoordinate(ctx, normalized); cached != nil {
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/geocode/search", a.config.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("Authorization", a.config.APIKey)
	req.Header.Set("Accept", "application/json")

	q := url.Values{}
	q.Set("text", normalized)
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status: %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return nil, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return nil, fmt.Errorf("invalid coordinate format for %q", address)
	}

	coord := geo.Coordinate{Lat: coords[1], Lng: coords[0]}
	if err := coord.Validate(); err != nil {
		return nil, fmt.Errorf("geocode returned %v: %w", coords, err)
	}

	a.storeCoordinate(ctx, normalized, coord)

	return &coord, nil
}

func (a *OpenRouteAdapter) cachedCoordinate(ctx context.Context, normalized string) *geo.Coordinate {
	if a.geocodeCache == nil {
		return nil
	}

	data, err := a.geocodeCache.Get(ctx, geocodeCachePrefix+normalized)
	if err != nil || data == nil {
		return nil
	}

	var coord geo.Coordinate
	if err := json.Unmarshal(data, &coord); err != nil {
		logger.Get().Warn("Discarding corrupt geocode cache entry",
			zap.String("address", normalized),
			zap.Error(err),
		)
		return nil
	}

	return &coord
}

func (a *OpenRouteAdapter) storeCoordinate(ctx context.Context, normalized string, coord geo.Coordinate) {
	if a.geocodeCache == nil {
		return
	}

	data, err := json.Marshal(coord)
	if err != nil {
		return
	}

	ttl := time.Duration(a.config.GeocodeCacheTTLHours) * time.Hour
	if err := a.geocodeCache.Set(ctx, geocodeCachePrefix+normalized, data, ttl); err != nil {
		logger.Get().Warn("Geocode cache write failed",
			zap.String("address", normalized),
			zap.Error(err),
		)
	}
}

// normalizeAddress collapses whitespace so cache keys stay consistent.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// formatDuration renders minutes as a short human-readable string.
func formatDuration(minutes float64) string {
	total := int(minutes + 0.5)
	if total < 1 {
		return "less than a minute"
	}
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%d h %d min", total/60, total%60)
}
