package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/pkg/jwt"
)

// Locals keys para la identidad extraída del token.
const (
	LocalUserID         = "user_id"
	LocalOrganizationID = "organization_id"
	LocalRole           = "role"
)

// AuthMiddleware valida el Bearer Token JWT y deja UserID, OrganizationID y
// Role en c.Locals para los handlers protegidos.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respondFail(c, fiber.StatusUnauthorized, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondFail(c, fiber.StatusUnauthorized, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respondFail(c, fiber.StatusUnauthorized, "token vacío")
		}
		userID, organizationID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return respondFail(c, fiber.StatusUnauthorized, "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalOrganizationID, organizationID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a usuarios con alguno de los roles dados.
// Debe ir detrás de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := allowed[GetRole(c)]; !ok {
			return respondFail(c, fiber.StatusForbidden, "rol insuficiente para esta operación")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetOrganizationID devuelve el OrganizationID del contexto.
func GetOrganizationID(c *fiber.Ctx) string {
	return localString(c, LocalOrganizationID)
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
