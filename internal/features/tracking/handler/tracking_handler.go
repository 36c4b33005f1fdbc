package handler

import (
	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/core/server"
	"golek-ongkir/internal/features/tracking/domain"
	"golek-ongkir/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for tracking operations.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// TrackRequest is the body of POST /track.
type TrackRequest struct {
	Courier string `json:"courier"`
	Waybill string `json:"waybill"`
	// LastPhoneNumber is the receiver's last phone digits; only JNE uses it.
	LastPhoneNumber string `json:"last_phone_number"`
}

// Register mounts the tracking routes on app.
func (h *TrackingHandler) Register(app fiber.Router) {
	app.Post("/track", h.TrackPackage)
}

// TrackPackage godoc
// @Summary Track a package
// @Description Retrieves the manifest of a shipment, most recent event first
// @Tags tracking
// @Accept json
// @Produce json
// @Param request body TrackRequest true "Tracking query"
// @Success 200 {object} apiclient.Envelope[domain.TrackingResult]
// @Failure 400 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Failure 503 {object} server.ErrorResponse
// @Router /track [post]
func (h *TrackingHandler) TrackPackage(c *fiber.Ctx) error {
	var req TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return server.WriteError(c, apperror.Validation("body", "request body is not valid JSON"))
	}

	env, err := h.trackingService.Track(c.UserContext(), domain.TrackQuery{
		Courier:         req.Courier,
		Waybill:         req.Waybill,
		LastPhoneNumber: req.LastPhoneNumber,
	})
	if err != nil {
		return server.WriteError(c, err)
	}
	if env.Error {
		return server.WriteUpstreamError(c, env.Status, env.Message)
	}
	return c.JSON(env)
}
