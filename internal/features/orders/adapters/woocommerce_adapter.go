package adapter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"delivery-tracker/internal/core/config"
	"delivery-tracker/internal/core/httpclient"
	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/features/orders/domain"
	trackingdomain "delivery-tracker/internal/features/tracking/domain"
	"delivery-tracker/internal/geo"

	"go.uber.org/zap"
)

// WooCommerceAdapter implements the OrderProvider interface using the WooCommerce REST API.
type WooCommerceAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the WooCommerce connection details.
	config config.WooCommerceConfig
}

// NewWooCommerceAdapter creates a new instance of WooCommerceAdapter.
func NewWooCommerceAdapter(cfg config.WooCommerceConfig) *WooCommerceAdapter {
	return &WooCommerceAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// GetOrder fetches an order from WooCommerce and maps it to the domain entity.
func (a *WooCommerceAdapter) GetOrder(orderID string) (*domain.Order, error) {
	url := fmt.Sprintf("%s/wp-json/wc/v3/orders/%s", a.config.URL, orderID)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("woocommerce API returned status: %d", resp.StatusCode)
	}

	var wcOrder woocommerceOrder
	if err := json.NewDecoder(resp.Body).Decode(&wcOrder); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return a.mapToDomain(wcOrder), nil
}

// HealthCheck verifies that the WooCommerce API is reachable and credentials are valid.
func (a *WooCommerceAdapter) HealthCheck() error {
	// Check orders endpoint with per_page=1 to verify auth and reachability
	url := fmt.Sprintf("%s/wp-json/wc/v3/orders?per_page=1", a.config.URL)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}

// authorize adds the Basic auth header from the consumer key pair.
func (a *WooCommerceAdapter) authorize(req *http.Request) {
	authVal := make([]byte, 0, len(a.config.ConsumerKey)+len(a.config.ConsumerSecret)+1)
	authVal = fmt.Appendf(authVal, "%s:%s", a.config.ConsumerKey, a.config.ConsumerSecret)

	encoded := base64.StdEncoding.EncodeToString(authVal)
	req.Header.Add("Authorization", "Basic "+encoded)
}

// mapToDomain converts a raw WooCommerce order response into a domain Order entity.
func (a *WooCommerceAdapter) mapToDomain(wcOrder woocommerceOrder) *domain.Order {
	status := domain.ParseOrderStatus(wcOrder.Status)

	return &domain.Order{
		ID:         strconv.Itoa(wcOrder.ID),
		Status:     status,
		FirstName:  wcOrder.Billing.FirstName,
		LastName:   wcOrder.Billing.LastName,
		Address:    wcOrder.Shipping.Address1,
		City:       wcOrder.Shipping.City,
		State:      wcOrder.Shipping.State,
		Postcode:   wcOrder.Shipping.Postcode,
		Email:      wcOrder.Billing.Email,
		CartTotal:  parseTotal(wcOrder.Total),
		AgentID:    extractAgentID(wcOrder.MetaData),
		DropOff:    extractDropOff(wcOrder.MetaData),
		StageTimes: stageTimes(wcOrder, status),
		CreatedAt:  time.Time(wcOrder.DateCreated),
		Items:      mapItems(wcOrder.LineItems, wcOrder.FeeLines),
	}
}

// parseTotal converts the WooCommerce decimal-string total to a float.
func parseTotal(raw string) float64 {
	if raw == "" {
		return 0
	}
	total, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Get().Warn("Failed to parse order total", zap.String("total", raw), zap.Error(err))
		return 0
	}
	return total
}

// extractAgentID finds the assigned delivery agent in order metadata.
func extractAgentID(meta []wcMetaData) string {
	for _, m := range meta {
		switch m.Key {
		case "_delivery_agent", "lafka_delivery_agent", "delivery_agent_id", "_assigned_agent":
			if val, ok := m.Value.(string); ok && val != "" {
				return val
			}
			// some stores record the agent user ID as a number
			if val, ok := m.Value.(float64); ok && val > 0 {
				return strconv.Itoa(int(val))
			}
		}
	}
	return ""
}

// extractDropOff finds the customer coordinate captured at checkout, if the
// storefront recorded one. Out-of-range values are discarded rather than
// propagated to distance math.
func extractDropOff(meta []wcMetaData) *geo.Coordinate {
	lat, latOK := metaFloat(meta, "_delivery_lat", "_shipping_latitude")
	lng, lngOK := metaFloat(meta, "_delivery_lng", "_shipping_longitude")

	if !latOK || !lngOK {
		return nil
	}

	coord := geo.Coordinate{Lat: lat, Lng: lng}
	if err := coord.Validate(); err != nil {
		logger.Get().Warn("Discarding invalid drop-off coordinate from order meta",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
		)
		return nil
	}

	return &coord
}

// metaFloat reads the first matching meta key as a float. WooCommerce meta
// values arrive as strings or numbers depending on how they were written.
func metaFloat(meta []wcMetaData, keys ...string) (float64, bool) {
	for _, m := range meta {
		for _, key := range keys {
			if m.Key != key {
				continue
			}
			switch val := m.Value.(type) {
			case float64:
				return val, true
			case string:
				parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
				if err == nil {
					return parsed, true
				}
			}
		}
	}
	return 0, false
}

// stageTimes builds the stage timestamp map. The store records the creation
// time and the last modification time; the latter belongs to the stage the
// order is currently in. Intermediate stages stay unrecorded.
func stageTimes(wcOrder woocommerceOrder, status domain.OrderStatus) map[string]string {
	times := make(map[string]string)

	if created := time.Time(wcOrder.DateCreated); !created.IsZero() {
		times[trackingdomain.StageReceived] = created.Format("2006-01-02T15:04:05")
	}

	if modified := time.Time(wcOrder.DateModified); !modified.IsZero() {
		stage := trackingdomain.StageForStatus(status)
		if _, exists := times[stage]; !exists {
			times[stage] = modified.Format("2006-01-02T15:04:05")
		}
	}

	return times
}

// mapItems converts WooCommerce line items and fee lines to domain OrderItems.
func mapItems(wcItems []wcLineItem, feeLines []wcFeeLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(wcItems)+len(feeLines))

	for _, item := range wcItems {
		var picture string
		if len(item.Image.Src) > 0 {
			picture = item.Image.Src
		}
		items = append(items, domain.OrderItem{
			Quantity: item.Quantity,
			SKU:      item.Sku,
			Name:     item.Name,
			Picture:  picture,
		})
	}

	for _, fee := range feeLines {
		items = append(items, domain.OrderItem{
			Quantity: 1,
			SKU:      "",
			Name:     fee.Name,
			Picture:  "",
		})
	}

	return items
}

// internal structs for mapping

// woocommerceOrder represents the JSON structure of an order from WooCommerce API.
type woocommerceOrder struct {
	// ID is the unique order ID.
	ID int `json:"id"`
	// Status is the order status (e.g., pending, processing, out-for-delivery).
	Status string `json:"status"`
	// Total is the order total as a decimal string.
	Total string `json:"total"`
	// DateCreated is the timestamp when the order was created.
	DateCreated wcTime `json:"date_created"`
	// DateModified is the timestamp of the last status change.
	DateModified wcTime `json:"date_modified"`
	// Billing holds the billing address details.
	Billing wcBilling `json:"billing"`
	// Shipping holds the shipping address details.
	Shipping wcShipping `json:"shipping"`
	// LineItems contains the products ordered.
	LineItems []wcLineItem `json:"line_items"`
	// FeeLines contains additional fees/products added to the order.
	FeeLines []wcFeeLine `json:"fee_lines"`
	// MetaData contains extra fields, including delivery agent and drop-off
	// coordinates written by the storefront.
	MetaData []wcMetaData `json:"meta_data"`
}

// wcMetaData represents a key-value pair in WooCommerce metadata.
type wcMetaData struct {
	// Key is the metadata key name.
	Key string `json:"key"`
	// Value is the metadata value, which can be of various types.
	Value interface{} `json:"value"`
}

// wcBilling holds billing address information.
type wcBilling struct {
	// FirstName is the customer's first name.
	FirstName string `json:"first_name"`
	// LastName is the customer's last name.
	LastName string `json:"last_name"`
	// Email is the customer's email address.
	Email string `json:"email"`
}

// wcShipping holds shipping address information.
type wcShipping struct {
	// Address1 is the primary address line.
	Address1 string `json:"address_1"`
	// City is the shipping city.
	City string `json:"city"`
	// State is the shipping state or province.
	State string `json:"state"`
	// Postcode is the shipping postcode.
	Postcode string `json:"postcode"`
}

// wcLineItem represents a product in the WooCommerce order.
type wcLineItem struct {
	// ID is the unique identifier for the line item.
	ID int `json:"id"`
	// Name is the product name.
	Name string `json:"name"`
	// Sku is the product SKU.
	Sku string `json:"sku"`
	// Quantity is the number of units ordered.
	Quantity int `json:"quantity"`
	// Image holds the product image details.
	Image wcImage `json:"image"`
}

// wcFeeLine represents a fee or additional product line item.
type wcFeeLine struct {
	// Name is the fee/product name.
	Name string `json:"name"`
}

// wcImage holds the product image URL.
type wcImage struct {
	// Src is the source URL of the image.
	Src string `json:"src"`
}

// wcTime is a custom helper struct to handle WooCommerce's date format.
type wcTime time.Time

// UnmarshalJSON parses the custom date format used by WooCommerce.
func (t *wcTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	// WooCommerce usually returns ISO8601 "2018-12-19T14:48:25"
	if s == "null" {
		*t = wcTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		// Try with timezone just in case
		parsed, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		logger.Get().Warn("Failed to parse date", zap.String("date", s), zap.Error(err))
		return nil // Return zero time
	}
	*t = wcTime(parsed)
	return nil
}
