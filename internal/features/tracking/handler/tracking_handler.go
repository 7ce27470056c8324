package handler

import (
	"errors"
	"net/http"

	"delivery-tracker/internal/core/logger"
	orderservice "delivery-tracker/internal/features/orders/service"
	"delivery-tracker/internal/features/tracking/service"
	"delivery-tracker/internal/geo"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackingHandler handles HTTP requests for delivery tracking and agent
// location pings.
type TrackingHandler struct {
	service *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(s *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		service: s,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// LocationRequest is the body of an agent location ping.
type LocationRequest struct {
	// Lat is the reported latitude.
	Lat float64 `json:"lat"`
	// Lng is the reported longitude.
	Lng float64 `json:"lng"`
	// AccuracyM is the reported GPS accuracy in meters, optional.
	AccuracyM float64 `json:"accuracy_m"`
}

// TrackOrder godoc
// @Summary Track a delivery order
// @Description Returns the stage timeline, ETA and live courier position for an order
// @Tags tracking
// @Produce json
// @Param id path string true "Order ID"
// @Param email query string true "Customer Email"
// @Success 200 {object} domain.DeliveryTracking
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id}/track [get]
func (h *TrackingHandler) TrackOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	email := c.Query("email")

	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	if email == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Email is required",
			RayID:   rayID,
		})
	}

	tracking, err := h.service.Track(c.Context(), orderID, email)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrOrderNotFound):
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "Order not found",
				RayID:   rayID,
			})
		case errors.Is(err, orderservice.ErrEmailMismatch):
			return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
				Message: "Email mismatch",
				RayID:   rayID,
			})
		default:
			logger.Get().Error("Failed to build tracking view",
				zap.String("order_id", orderID),
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Message: "Internal Server Error",
				RayID:   rayID,
			})
		}
	}

	return c.JSON(tracking)
}

// RecordLocation godoc
// @Summary Record an agent GPS fix
// @Description Stores the latest courier position used for live ETAs
// @Tags tracking
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Param request body LocationRequest true "GPS fix"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /agents/{id}/location [post]
func (h *TrackingHandler) RecordLocation(c *fiber.Ctx) error {
	agentID := c.Params("id")

	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	if agentID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Agent ID is required",
			RayID:   rayID,
		})
	}

	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	coord := geo.Coordinate{Lat: req.Lat, Lng: req.Lng}
	if err := h.service.RecordLocation(c.Context(), agentID, coord, req.AccuracyM); err != nil {
		if errors.Is(err, geo.ErrInvalidCoordinate) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID,
			})
		}

		logger.Get().Error("Failed to record agent location",
			zap.String("agent_id", agentID),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID,
		})
	}

	return c.SendStatus(http.StatusNoContent)
}
