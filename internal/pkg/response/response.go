package response

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ============================================================
// Error mapping
// ============================================================

// Rule sends Status for any error matching one of Errs.
// An empty Message exposes err.Error() to the client.
type Rule struct {
	Status  int
	Message string
	Errs    []error
}

// ErrorMapper turns service errors into error envelopes
type ErrorMapper struct {
	rules []Rule
}

// NewErrorMapper checks rules in order; the first match wins
func NewErrorMapper(rules ...Rule) *ErrorMapper {
	return &ErrorMapper{rules: rules}
}

// Status returns the status and client message for err.
// ok is false when no rule matches.
func (m *ErrorMapper) Status(err error) (status int, message string, ok bool) {
	for _, rule := range m.rules {
		for _, target := range rule.Errs {
			if !errors.Is(err, target) {
				continue
			}
			if rule.Message != "" {
				return rule.Status, rule.Message, true
			}
			return rule.Status, err.Error(), true
		}
	}
	return 0, "", false
}

// Send writes the mapped envelope. Unmatched errors are logged and
// answered with fallback as a 500.
func (m *ErrorMapper) Send(c *fiber.Ctx, err error, fallback string) error {
	if status, message, ok := m.Status(err); ok {
		return Error(c, status, message)
	}
	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return InternalServerError(c, fallback)
}
