package server

import (
	"errors"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/core/connectivity"
	"golek-ongkir/internal/core/logger"
	"golek-ongkir/internal/core/retry"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// RayID returns the request id set by the requestid middleware, if any.
func RayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// StatusFor maps an error from the request pipeline to an HTTP status.
// Upstream 4xx rejections keep their status; other upstream failures are 502.
func StatusFor(err error) int {
	var (
		exhausted *retry.ExhaustedError
		transport *apiclient.TransportError
	)
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, connectivity.ErrNoConnectivity):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &exhausted),
		errors.Is(err, apiclient.ErrNetworkFailure),
		errors.Is(err, apiclient.ErrTimeoutFailure):
		return fiber.StatusGatewayTimeout
	case errors.As(err, &transport) && transport.Status >= 400 && transport.Status < 500:
		return transport.Status
	case errors.As(err, &transport),
		errors.Is(err, apperror.ErrUnrecognizedShape),
		errors.Is(err, apiclient.ErrMalformedResponse):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// WriteError responds with the status StatusFor picks and an ErrorResponse body.
// Upstream error messages are passed through when the upstream supplied one.
func WriteError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	msg := err.Error()

	var transport *apiclient.TransportError
	if errors.As(err, &transport) {
		if m := transport.Message(); m != "" {
			msg = m
		}
	}

	if status >= fiber.StatusInternalServerError {
		logger.Get().Error("Request failed",
			zap.String("path", c.Path()),
			zap.String("ray_id", RayID(c)),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   RayID(c),
	})
}

// WriteUpstreamError responds to an error envelope the upstream returned with a 2xx status.
func WriteUpstreamError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "upstream reported an error"
	}
	if status < 400 {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   RayID(c),
	})
}
