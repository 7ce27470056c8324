package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"delivery-tracker/internal/core/config"
	"delivery-tracker/internal/core/routing"
	orderdomain "delivery-tracker/internal/features/orders/domain"
	orderservice "delivery-tracker/internal/features/orders/service"
	"delivery-tracker/internal/features/tracking/domain"
	"delivery-tracker/internal/features/tracking/service"
	"delivery-tracker/internal/geo"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticOrderProvider struct {
	order *orderdomain.Order
	err   error
}

func (p *staticOrderProvider) GetOrder(orderID string) (*orderdomain.Order, error) {
	return p.order, p.err
}

type agentRepoStub struct {
	fixes map[string]domain.AgentFix
}

func newAgentRepoStub() *agentRepoStub {
	return &agentRepoStub{fixes: make(map[string]domain.AgentFix)}
}

func (r *agentRepoStub) Save(ctx context.Context, fix domain.AgentFix) error {
	r.fixes[fix.AgentID] = fix
	return nil
}

func (r *agentRepoStub) Latest(ctx context.Context, agentID string) (*domain.AgentFix, error) {
	fix, ok := r.fixes[agentID]
	if !ok {
		return nil, nil
	}
	return &fix, nil
}

func newTrackingTestApp(provider *staticOrderProvider, agents *agentRepoStub) *fiber.App {
	svc := service.NewTrackingService(
		orderservice.NewOrderService(provider),
		agents,
		routing.NewResolver(nil),
		geo.Coordinate{Lat: 40.4168, Lng: -3.7038},
		config.TrackingConfig{AgentFixTTLMinutes: 60, AvgSpeedKmh: 30},
	)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})

	h := NewTrackingHandler(svc)
	app.Get("/orders/:id/track", h.TrackOrder)
	app.Post("/agents/:id/location", h.RecordLocation)
	return app
}

// TestTrackingHandler_TrackOrder_Success verifies the tracking view renders
// for a valid order and email.
func TestTrackingHandler_TrackOrder_Success(t *testing.T) {
	order := &orderdomain.Order{
		ID:     "123",
		Status: orderdomain.OrderStatusProcessing,
		Email:  "customer@example.com",
	}
	app := newTrackingTestApp(&staticOrderProvider{order: order}, newAgentRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/orders/123/track?email=customer@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tracking domain.DeliveryTracking
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &tracking))

	assert.Equal(t, "123", tracking.OrderID)
	assert.Equal(t, orderdomain.OrderStatusProcessing, tracking.Status)
	require.Len(t, tracking.Timeline, 5)
	assert.Equal(t, "20-30 minutes", tracking.ETA.ETALabel)
}

// TestTrackingHandler_TrackOrder_MissingEmail verifies a 400 without an email.
func TestTrackingHandler_TrackOrder_MissingEmail(t *testing.T) {
	app := newTrackingTestApp(&staticOrderProvider{order: &orderdomain.Order{ID: "123"}}, newAgentRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/orders/123/track", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestTrackingHandler_TrackOrder_EmailMismatch verifies a 401 on the wrong email.
func TestTrackingHandler_TrackOrder_EmailMismatch(t *testing.T) {
	order := &orderdomain.Order{ID: "123", Email: "customer@example.com"}
	app := newTrackingTestApp(&staticOrderProvider{order: order}, newAgentRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/orders/123/track?email=wrong@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestTrackingHandler_TrackOrder_NotFound verifies a store-level miss maps to
// a 404 rather than an internal error.
func TestTrackingHandler_TrackOrder_NotFound(t *testing.T) {
	provider := &staticOrderProvider{
		err: fmt.Errorf("%w: 999", orderdomain.ErrOrderNotFound),
	}
	app := newTrackingTestApp(provider, newAgentRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/orders/999/track?email=customer@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp ErrorResponse
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "Order not found", errResp.Message)
}

// TestTrackingHandler_RecordLocation_Success verifies a valid ping is stored.
func TestTrackingHandler_RecordLocation_Success(t *testing.T) {
	agents := newAgentRepoStub()
	app := newTrackingTestApp(&staticOrderProvider{order: &orderdomain.Order{}}, agents)

	body, _ := json.Marshal(LocationRequest{Lat: 40.44, Lng: -3.69, AccuracyM: 8})
	req := httptest.NewRequest(http.MethodPost, "/agents/agent-7/location", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	fix, ok := agents.fixes["agent-7"]
	require.True(t, ok)
	assert.InDelta(t, 40.44, fix.Coordinate.Lat, 1e-9)
	assert.InDelta(t, -3.69, fix.Coordinate.Lng, 1e-9)
	assert.Equal(t, 8.0, fix.AccuracyM)
	assert.WithinDuration(t, time.Now(), fix.RecordedAt, time.Minute)
}

// TestTrackingHandler_RecordLocation_InvalidCoordinate verifies out-of-range
// pings are rejected.
func TestTrackingHandler_RecordLocation_InvalidCoordinate(t *testing.T) {
	app := newTrackingTestApp(&staticOrderProvider{order: &orderdomain.Order{}}, newAgentRepoStub())

	body, _ := json.Marshal(LocationRequest{Lat: 95, Lng: 0})
	req := httptest.NewRequest(http.MethodPost, "/agents/agent-7/location", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestTrackingHandler_RecordLocation_BadBody verifies malformed JSON yields a 400.
func TestTrackingHandler_RecordLocation_BadBody(t *testing.T) {
	app := newTrackingTestApp(&staticOrderProvider{order: &orderdomain.Order{}}, newAgentRepoStub())

	req := httptest.NewRequest(http.MethodPost, "/agents/agent-7/location", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
