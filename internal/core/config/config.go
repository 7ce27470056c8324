package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// RedisURL is the connection URL for the Redis instance backing agent
	// fixes, delivery zones and the geocode cache.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`

	// WooCommerce holds the WooCommerce API configuration.
	WooCommerce WooCommerceConfig `mapstructure:",squash"`

	// Routing holds the routing-service configuration.
	Routing RoutingConfig `mapstructure:",squash"`

	// Restaurant holds the restaurant origin location.
	Restaurant RestaurantConfig `mapstructure:",squash"`

	// Shipping holds the delivery rate table.
	Shipping ShippingConfig `mapstructure:",squash"`

	// Tracking holds agent tracking settings.
	Tracking TrackingConfig `mapstructure:",squash"`
}

// WooCommerceConfig holds the credentials for the WooCommerce Store.
type WooCommerceConfig struct {
	// URL is the base URL of the WooCommerce store.
	URL string `mapstructure:"WC_URL" required:"true"`
	// ConsumerKey is the public key for API access.
	ConsumerKey string `mapstructure:"WC_CONSUMER_KEY" required:"true"`
	// ConsumerSecret is the secret key for API access.
	ConsumerSecret string `mapstructure:"WC_CONSUMER_SECRET" required:"true"`
}

// RoutingConfig holds the OpenRouteService connection settings.
type RoutingConfig struct {
	// Enabled toggles use of the routing service; when false every distance
	// falls back to the great-circle estimate.
	Enabled bool `mapstructure:"ROUTING_ENABLED" default:"false"`
	// APIKey is the OpenRouteService API key.
	APIKey string `mapstructure:"ROUTING_API_KEY"`
	// BaseURL is the OpenRouteService base URL.
	BaseURL string `mapstructure:"ROUTING_BASE_URL" default:"https://api.openrouteservice.org"`
	// GeocodeCacheTTLHours is how long geocoded addresses stay cached.
	GeocodeCacheTTLHours int `mapstructure:"GEOCODE_CACHE_TTL_HOURS" default:"24"`
}

// RestaurantConfig holds the restaurant origin used for every quote and ETA.
type RestaurantConfig struct {
	// Lat is the restaurant latitude.
	Lat float64 `mapstructure:"RESTAURANT_LAT" required:"true"`
	// Lng is the restaurant longitude.
	Lng float64 `mapstructure:"RESTAURANT_LNG" required:"true"`
	// Address is the restaurant street address, used for display.
	Address string `mapstructure:"RESTAURANT_ADDRESS"`
}

// ShippingConfig holds the delivery cost rate table.
type ShippingConfig struct {
	// BaseCost is the flat cost applied to every delivery.
	BaseCost float64 `mapstructure:"SHIPPING_BASE_COST" default:"5"`
	// CostPerKm is the per-kilometer cost.
	CostPerKm float64 `mapstructure:"SHIPPING_COST_PER_KM" default:"1.5"`
	// MinCost is the lower cost bound; 0 disables the floor.
	MinCost float64 `mapstructure:"SHIPPING_MIN_COST" default:"0"`
	// MaxCost is the upper cost bound; 0 disables the ceiling.
	MaxCost float64 `mapstructure:"SHIPPING_MAX_COST" default:"0"`
	// FreeDeliveryThreshold is the cart total at which delivery becomes
	// free; 0 disables free delivery.
	FreeDeliveryThreshold float64 `mapstructure:"SHIPPING_FREE_DELIVERY_THRESHOLD" default:"0"`
	// MaxDistanceKm is the delivery radius; beyond it no rate is offered.
	// 0 disables the limit.
	MaxDistanceKm float64 `mapstructure:"SHIPPING_MAX_DISTANCE_KM" default:"0"`
	// ZonesJSON is a JSON array of postcode pricing zones, in match order.
	ZonesJSON string `mapstructure:"DELIVERY_ZONES"`
}

// TrackingConfig holds delivery agent tracking settings.
type TrackingConfig struct {
	// AgentFixTTLMinutes is how long an agent GPS fix stays usable; older
	// fixes are treated as absent.
	AgentFixTTLMinutes int `mapstructure:"AGENT_FIX_TTL_MINUTES" default:"60"`
	// AvgSpeedKmh is the assumed courier speed for great-circle ETAs.
	AvgSpeedKmh float64 `mapstructure:"AVG_SPEED_KMH" default:"30"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
