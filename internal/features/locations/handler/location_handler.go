package handler

import (
	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/server"
	"golek-ongkir/internal/features/locations/domain"
	"golek-ongkir/internal/features/locations/service"

	"github.com/gofiber/fiber/v2"
)

// LocationHandler handles HTTP requests for the location hierarchy and search.
type LocationHandler struct {
	service *service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(s *service.LocationService) *LocationHandler {
	return &LocationHandler{
		service: s,
	}
}

// Register mounts the location routes on app.
func (h *LocationHandler) Register(app fiber.Router) {
	app.Get("/provinces", h.GetProvinces)
	app.Get("/cities", h.GetCities)
	app.Get("/districts", h.GetDistricts)
	app.Get("/search", h.Search)
}

// GetProvinces godoc
// @Summary List provinces
// @Tags locations
// @Produce json
// @Success 200 {object} apiclient.Envelope[[]domain.Location]
// @Failure 503 {object} server.ErrorResponse
// @Router /provinces [get]
func (h *LocationHandler) GetProvinces(c *fiber.Ctx) error {
	return h.hierarchy(c, domain.TierProvince, 0)
}

// GetCities godoc
// @Summary List the cities of a province
// @Tags locations
// @Produce json
// @Param province query int true "Province ID"
// @Success 200 {object} apiclient.Envelope[[]domain.Location]
// @Failure 400 {object} server.ErrorResponse
// @Router /cities [get]
func (h *LocationHandler) GetCities(c *fiber.Ctx) error {
	return h.hierarchy(c, domain.TierCity, c.QueryInt("province"))
}

// GetDistricts godoc
// @Summary List the districts of a city
// @Tags locations
// @Produce json
// @Param city query int true "City ID"
// @Success 200 {object} apiclient.Envelope[[]domain.Location]
// @Failure 400 {object} server.ErrorResponse
// @Router /districts [get]
func (h *LocationHandler) GetDistricts(c *fiber.Ctx) error {
	return h.hierarchy(c, domain.TierDistrict, c.QueryInt("city"))
}

// Search godoc
// @Summary Search locations
// @Tags locations
// @Produce json
// @Param q query string true "Query, at least 2 characters"
// @Success 200 {object} apiclient.Envelope[[]domain.SearchResult]
// @Failure 400 {object} server.ErrorResponse
// @Router /search [get]
func (h *LocationHandler) Search(c *fiber.Ctx) error {
	env, err := h.service.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return server.WriteError(c, err)
	}
	return respond(c, env)
}

func (h *LocationHandler) hierarchy(c *fiber.Ctx, tier domain.Tier, parentID int) error {
	env, err := h.service.GetHierarchy(c.UserContext(), tier, parentID)
	if err != nil {
		return server.WriteError(c, err)
	}
	return respond(c, env)
}

func respond[T any](c *fiber.Ctx, env apiclient.Envelope[T]) error {
	if env.Error {
		return server.WriteUpstreamError(c, env.Status, env.Message)
	}
	return c.JSON(env)
}
