package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/internal/domain"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/logger"
)

// respondError traduce errores de dominio a códigos HTTP con cuerpo
// { "error": <mensaje> }. Los fallos inesperados se loguean con contexto y se
// devuelven como 500 genérico sin filtrar el detalle al caller.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAlreadyProcessed):
		// La segunda aceptación de una notificación ya procesada es 400 para el POS
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "ya fue procesada"})
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("fallo inesperado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}
