package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"registrar_portal_backend/internals/constants"
)

// Locals keys hydrated from JWT claims
const (
	LocUserID    = "user_id"
	LocStudentID = "student_id"
	LocRole      = "role"
	LocEmail     = "email"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // use the access_token cookie when there is no Bearer header
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		// 1) Grab token: Authorization: Bearer xxx (or cookie if allowed)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access. Please login.")
		}

		// 2) Parse + verify algorithm
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals("jwt_claims", claims)

		if v := strClaim(claims, "sub"); v != "" {
			c.Locals(LocUserID, v)
		}
		if v := strClaim(claims, "role"); v != "" {
			c.Locals(LocRole, v)
		}
		if v := strClaim(claims, "email"); v != "" {
			c.Locals(LocEmail, v)
		}
		if sid, ok := numClaim(claims, "student_id"); ok {
			c.Locals(LocStudentID, sid)
		}

		return c.Next()
	}
}

// OnlyStudent rejects requests whose token does not carry the student role.
func OnlyStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(LocRole).(string); role != constants.RoleStudent {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access. Please login.")
		}
		if _, ok := c.Locals(LocStudentID).(int64); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Student ID missing in session")
		}
		return c.Next()
	}
}

// OnlyAdmin rejects requests whose token does not carry the admin role.
func OnlyAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(LocRole).(string); role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// StudentID returns the student id hydrated by AuthJWT.
func StudentID(c *fiber.Ctx) (int64, bool) {
	sid, ok := c.Locals(LocStudentID).(int64)
	return sid, ok
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func numClaim(claims jwt.MapClaims, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}
