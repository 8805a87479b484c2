package middleware

import (
	"strings"

	"go-catalog-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// RequireAuth validates the bearer token and stores the caller in the context
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(claimsKey, claims)
		c.Locals("user_id", claims.Subject)

		return c.Next()
	}
}

// ClaimsFrom returns the token claims stored by RequireAuth
func ClaimsFrom(c *fiber.Ctx) (*jwt.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}

// RequirePrivilege checks if the authenticated caller has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return requireOneOf("Forbidden: requires '"+requiredPrivilege+"' privilege", requiredPrivilege)
}

// RequireAnyPrivilege checks if the caller has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return requireOneOf("Forbidden: requires one of "+strings.Join(requiredPrivileges, ", ")+" privileges", requiredPrivileges...)
}

func requireOneOf(denied string, codes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No privileges found"})
		}
		for _, code := range codes {
			if claims.HasPrivilege(code) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": denied})
	}
}
