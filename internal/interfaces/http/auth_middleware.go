package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/EmprendoHub/inventory-app-sub003/internal/application/dto"
	"github.com/EmprendoHub/inventory-app-sub003/pkg/jwt"
)

// Locals keys para UserID y WarehouseID en Fiber.
const (
	LocalUserID      = "user_id"
	LocalWarehouseID = "warehouse_id"
)

// AuthMiddleware valida el Bearer Token de sesión y extrae UserID y la
// afiliación de bodega a c.Locals. El motor confía en estos claims: quién
// emite la sesión es un colaborador externo.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token vacío"})
		}
		userID, warehouseID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalWarehouseID, warehouseID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetWarehouseID devuelve la afiliación de bodega del contexto.
func GetWarehouseID(c *fiber.Ctx) string {
	v := c.Locals(LocalWarehouseID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
