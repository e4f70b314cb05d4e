package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rodrantho/storatrack/internal/application/dto"
	"github.com/rodrantho/storatrack/internal/domain"
)

// fail traduce errores de dominio a respuestas HTTP. La taxonomía llega
// intacta desde el core; acá es el único lugar donde se decide el código.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return respond(c, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION", err)
	case errors.Is(err, domain.ErrDeviceRetired):
		return respond(c, fiber.StatusUnprocessableEntity, "DEVICE_RETIRED", err)
	case errors.Is(err, domain.ErrLocationRequired):
		return respond(c, fiber.StatusUnprocessableEntity, "LOCATION_REQUIRED", err)
	case errors.Is(err, domain.ErrLocationMismatch):
		return respond(c, fiber.StatusUnprocessableEntity, "LOCATION_MISMATCH", err)
	case errors.Is(err, domain.ErrInvalidWindow):
		return respond(c, fiber.StatusBadRequest, "INVALID_WINDOW", err)
	case errors.Is(err, domain.ErrConflict):
		// Reintentable por el caller: la transición es determinista dado el estado actual.
		return respond(c, fiber.StatusConflict, "CONFLICT", err)
	case errors.Is(err, domain.ErrCompanyHasDevices):
		return respond(c, fiber.StatusConflict, "COMPANY_HAS_DEVICES", err)
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrUnavailable):
		return respond(c, fiber.StatusServiceUnavailable, "UNAVAILABLE", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
