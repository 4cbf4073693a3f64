package middleware

import (
	"errors"
	"strings"

	"hana-qna/internal/core/domain"
	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TokenExpiredHeader tells the client to log in again rather than give up
const TokenExpiredHeader = "X-Token-Expired"

// AccessTokenCookie is the cookie set at login
const AccessTokenCookie = "access_token"

const identityKey = "identity"

// AuthMiddleware resolves the access token into an identity
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Find token in cookie or Authorization header
		accessToken := tokenFrom(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 2. Resolve; expired and invalid are told apart
		identity, err := auth.Resolve(accessToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrExpiredCredential):
				c.Set(TokenExpiredHeader, "true")
				return response.Unauthorized(c, "Access token expired")
			case errors.Is(err, domain.ErrMalformedCredential):
				return response.Unauthorized(c, "Access token has no authority")
			default:
				return response.Unauthorized(c, "Invalid access token")
			}
		}

		// 3. Set identity in context
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFrom(c)
		if identity == nil {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, role := range allowedRoles {
			if identity.HasRole(role) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// CustomerOnly allows only the CUSTOMER role
func CustomerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleCustomer)
}

// BankerOnly allows only the BANKER role
func BankerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleBanker)
}

// IdentityFrom returns the identity set by AuthMiddleware, or nil
func IdentityFrom(c *fiber.Ctx) *domain.Identity {
	identity, _ := c.Locals(identityKey).(*domain.Identity)
	return identity
}

func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(AccessTokenCookie); token != "" {
		return token
	}
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
