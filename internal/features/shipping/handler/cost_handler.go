package handler

import (
	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/core/courier"
	"golek-ongkir/internal/core/server"
	"golek-ongkir/internal/features/shipping/domain"
	"golek-ongkir/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
)

// CostHandler handles HTTP requests for shipping cost quotes.
type CostHandler struct {
	service *service.CostService
}

// NewCostHandler creates a new CostHandler.
func NewCostHandler(s *service.CostService) *CostHandler {
	return &CostHandler{
		service: s,
	}
}

// CostRequest is the body of POST /cost.
type CostRequest struct {
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
	// Weight is in grams.
	Weight   int      `json:"weight"`
	Couriers []string `json:"couriers"`
}

// Register mounts the shipping routes on app.
func (h *CostHandler) Register(app fiber.Router) {
	app.Post("/cost", h.CalculateCost)
	app.Get("/couriers", h.ListCouriers)
}

// CalculateCost godoc
// @Summary Calculate shipping cost
// @Description Quotes every selected courier between two districts. Flat upstream payloads are regrouped per courier.
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body CostRequest true "Cost query"
// @Success 200 {object} apiclient.Envelope[[]domain.CostResult]
// @Failure 400 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Failure 503 {object} server.ErrorResponse
// @Router /cost [post]
func (h *CostHandler) CalculateCost(c *fiber.Ctx) error {
	var req CostRequest
	if err := c.BodyParser(&req); err != nil {
		return server.WriteError(c, apperror.Validation("body", "request body is not valid JSON"))
	}

	env, err := h.service.Calculate(c.UserContext(), domain.CostQuery{
		Origin:      req.Origin,
		Destination: req.Destination,
		Weight:      req.Weight,
		Couriers:    req.Couriers,
	})
	if err != nil {
		return server.WriteError(c, err)
	}
	if env.Error {
		return server.WriteUpstreamError(c, env.Status, env.Message)
	}
	return c.JSON(env)
}

// ListCouriers godoc
// @Summary List supported couriers
// @Tags shipping
// @Produce json
// @Success 200 {array} courier.Courier
// @Router /couriers [get]
func (h *CostHandler) ListCouriers(c *fiber.Ctx) error {
	return c.JSON(courier.All())
}
