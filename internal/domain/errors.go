package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrAlreadyProcessed  = errors.New("la notificación ya fue procesada")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
