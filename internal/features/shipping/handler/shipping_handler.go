package handler

import (
	"errors"
	"net/http"

	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/features/shipping/service"
	"delivery-tracker/internal/geo"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShippingHandler handles HTTP requests for shipping quotes.
type ShippingHandler struct {
	service *service.ShippingService
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(s *service.ShippingService) *ShippingHandler {
	return &ShippingHandler{
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

// GetQuote godoc
// @Summary Compute a delivery shipping quote
// @Description Computes the delivery cost for a cart given the customer location or address
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body service.QuoteRequest true "Quote request"
// @Success 200 {object} domain.ShippingQuote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shipping/quote [post]
func (h *ShippingHandler) GetQuote(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	var req service.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	quote, err := h.service.Quote(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, geo.ErrInvalidCoordinate):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID,
			})
		case errors.Is(err, service.ErrNoDestination):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "destination coordinates or a resolvable address are required",
				RayID:   rayID,
			})
		case errors.Is(err, service.ErrOutOfRange):
			// Out of delivery radius means no rate is offered, not an error
			// cost and not a free delivery.
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "no delivery rate available for this address",
				RayID:   rayID,
			})
		default:
			logger.Get().Error("Failed to compute shipping quote",
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Message: "Internal Server Error",
				RayID:   rayID,
			})
		}
	}

	return c.JSON(quote)
}
