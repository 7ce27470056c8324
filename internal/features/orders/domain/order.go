package domain

import (
	"errors"
	"strings"
	"time"

	"delivery-tracker/internal/geo"
)

// ErrOrderNotFound is returned when the order does not exist, whichever
// layer discovers that. Adapters wrap it so handlers can match with
// errors.Is regardless of where the miss happened.
var ErrOrderNotFound = errors.New("order not found")

// OrderStatus is the closed set of delivery workflow states. Raw store
// statuses are normalized through ParseOrderStatus so status comparisons
// never depend on free-form strings.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been placed but not accepted.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing indicates the kitchen is preparing the order.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusReadyForPickup indicates the order awaits an agent pickup.
	OrderStatusReadyForPickup OrderStatus = "ready-for-pickup"
	// OrderStatusOutForDelivery indicates an agent is driving the order.
	OrderStatusOutForDelivery OrderStatus = "out-for-delivery"
	// OrderStatusDelivered indicates the order reached the customer.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled indicates the order was cancelled, refunded or failed.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus normalizes a raw WooCommerce status string into the
// closed OrderStatus set. Unknown statuses map to pending.
func ParseOrderStatus(raw string) OrderStatus {
	s := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "wc-"))

	switch s {
	case "pending", "on-hold":
		return OrderStatusPending
	case "processing", "preparing":
		return OrderStatusProcessing
	case "ready-for-pickup", "ready":
		return OrderStatusReadyForPickup
	case "out-for-delivery", "shipped":
		return OrderStatusOutForDelivery
	case "delivered", "completed":
		return OrderStatusDelivered
	case "cancelled", "refunded", "failed":
		return OrderStatusCancelled
	default:
		return OrderStatusPending
	}
}

// IsTerminal reports whether no further delivery progress is expected.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order represents a customer order in the system.
type Order struct {
	// ID is the unique identifier for the order.
	ID string `json:"order_id"`
	// Status is the normalized delivery workflow state.
	Status OrderStatus `json:"status"`
	// FirstName is the first name of the customer.
	FirstName string `json:"name"`
	// LastName is the last name of the customer.
	LastName string `json:"last_name"`
	// Address is the shipping address for the order.
	Address string `json:"address"`
	// City is the city of the shipping address.
	City string `json:"city"`
	// State is the state or province of the shipping address.
	State string `json:"state"`
	// Postcode is the shipping postcode, used for zone pricing.
	Postcode string `json:"postcode"`
	// Email is the contact email for the customer.
	Email string `json:"email"`
	// CartTotal is the order total, used for the free-delivery override.
	CartTotal float64 `json:"cart_total"`
	// AgentID is the assigned delivery agent, empty when unassigned.
	AgentID string `json:"agent_id,omitempty"`
	// DropOff is the customer coordinate when the storefront captured one.
	DropOff *geo.Coordinate `json:"drop_off,omitempty"`
	// StageTimes maps delivery stage keys to recorded timestamps. Only
	// stages the store actually recorded are present.
	StageTimes map[string]string `json:"stage_times,omitempty"`
	// CreatedAt is the timestamp when the order was created.
	CreatedAt time.Time `json:"create_date"`
	// Items contains the list of products included in the order.
	Items []OrderItem `json:"items"`
}

// OrderItem represents an individual item within an order.
type OrderItem struct {
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// SKU is the Stock Keeping Unit identifier for the product.
	SKU string `json:"sku"`
	// Name is the descriptive name of the product.
	Name string `json:"name"`
	// Picture is the URL to an image of the product.
	Picture string `json:"picture"`
}
