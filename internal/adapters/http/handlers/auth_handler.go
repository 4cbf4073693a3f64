package handlers

import (
	"time"

	"hana-qna/internal/adapters/http/middleware"
	"hana-qna/internal/config"
	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	accounts    *services.AccountService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, accounts *services.AccountService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		accounts:    accounts,
		cookie:      cookie,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles customer and banker login
// @Summary Login
// @Description Authenticate a customer or banker and return a bearer token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response{data=domain.TokenPair}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	pair, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, err, "Failed to login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		Expires:  pair.ExpiresAt,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
		Domain:   h.cookie.Domain,
	})

	return response.Success(c, "Login successful", pair)
}

// SignupCustomer handles customer registration
// @Summary Customer signup
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterCustomerInput true "Customer account"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) SignupCustomer(c *fiber.Ctx) error {
	var req services.RegisterCustomerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customer, err := h.accounts.RegisterCustomer(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to register customer")
	}

	return response.Created(c, "Customer registered successfully", fiber.Map{
		"customer": customer,
	})
}

// SignupBanker handles banker registration
// @Summary Banker signup
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterBankerInput true "Banker account"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup/banker [post]
func (h *AuthHandler) SignupBanker(c *fiber.Ctx) error {
	var req services.RegisterBankerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	banker, err := h.accounts.RegisterBanker(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to register banker")
	}

	return response.Created(c, "Banker registered successfully", fiber.Map{
		"banker": banker,
	})
}

// Logout clears the access token cookie
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
		Domain:   h.cookie.Domain,
	})

	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the identity resolved from the access token
// @Summary Current identity
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=domain.Identity}
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "Identity retrieved successfully", identity)
}
