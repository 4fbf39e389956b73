package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/model"
	"github.com/AradGolbaghi/new-hw-planner/utils/auth"
	"github.com/AradGolbaghi/new-hw-planner/utils/response"
)

// AuthMiddleware turns a bearer token into the identity every engine
// call receives. Login and credential storage live outside this system;
// a valid token is the only proof of identity the planner sees.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.claimsFromHeader(c)
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid or missing token")
		}

		c.Locals("identity", claims.Identity())
		return c.Next()
	}
}

// Optional is middleware that allows requests with or without a token
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.claimsFromHeader(c)
		if err != nil {
			return c.Next()
		}

		c.Locals("identity", claims.Identity())
		return c.Next()
	}
}

// RequireAdmin is middleware that requires an admin identity
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.claimsFromHeader(c)
		if err != nil {
			return response.Unauthorized(c, "Invalid or missing token")
		}
		if !claims.IsAdmin {
			return response.Forbidden(c, "Admin access required")
		}

		c.Locals("identity", claims.Identity())
		return c.Next()
	}
}

// claimsFromHeader extracts and validates the bearer token
func (m *AuthMiddleware) claimsFromHeader(c *fiber.Ctx) (*auth.Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, auth.ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}

	return m.jwtManager.ValidateToken(parts[1])
}

// GetIdentity extracts the authenticated identity from context
func GetIdentity(c *fiber.Ctx) (model.Identity, bool) {
	identity := c.Locals("identity")
	if identity == nil {
		return model.Identity{}, false
	}
	id, ok := identity.(model.Identity)
	return id, ok
}
