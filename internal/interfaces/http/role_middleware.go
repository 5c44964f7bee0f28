package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RequireRole devuelve un middleware que solo deja pasar a los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 Unauthorized → no hay rol en el contexto.
//   - 403 Forbidden    → el rol no está entre los permitidos.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "rol no encontrado en el token",
			})
		}
		for _, r := range allowed {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "el rol " + string(role) + " no tiene permiso para esta operación",
		})
	}
}

// RequireWrite permite OWNER y OPERATOR; VIEWER es solo lectura.
func RequireWrite() fiber.Handler {
	return RequireRole(entity.RoleOwner, entity.RoleOperator)
}

// RequireOwner permite solo OWNER.
func RequireOwner() fiber.Handler {
	return RequireRole(entity.RoleOwner)
}
