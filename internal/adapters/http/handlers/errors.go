package handlers

import (
	"strconv"

	"hana-qna/internal/adapters/http/middleware"
	"hana-qna/internal/core/domain"
	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// errorMapper maps service errors to HTTP statuses
var errorMapper = response.NewErrorMapper(
	response.Rule{Status: fiber.StatusBadRequest, Errs: []error{domain.ErrInvalidInput, services.ErrWeakPassword}},
	response.Rule{Status: fiber.StatusUnauthorized, Message: "Invalid email or password", Errs: []error{domain.ErrInvalidLogin}},
	response.Rule{Status: fiber.StatusUnauthorized, Message: "Unauthorized", Errs: []error{domain.ErrInvalidCredential}},
	response.Rule{Status: fiber.StatusForbidden, Message: "You don't have permission to change this resource", Errs: []error{domain.ErrForbidden}},
	response.Rule{Status: fiber.StatusNotFound, Errs: []error{domain.ErrNotFound}},
	response.Rule{Status: fiber.StatusConflict, Errs: []error{
		domain.ErrAnswerExists,
		domain.ErrNoAnswerYet,
		domain.ErrConflictingVoteState,
		services.ErrEmailAlreadyExists,
	}},
	response.Rule{Status: fiber.StatusBadGateway, Message: "File storage is unavailable, nothing was saved", Errs: []error{domain.ErrUpstreamStorage}},
)

// fail maps a service error to the response envelope.
// Unknown errors are logged and answered with fallback as a 500.
func fail(c *fiber.Ctx, err error, fallback string) error {
	return errorMapper.Send(c, err, fallback)
}

// paramID parses a positive numeric path parameter
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// currentCustomerID resolves the token subject to a customer id
func currentCustomerID(c *fiber.Ctx, accounts *services.AccountService) (uint, error) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return 0, domain.ErrInvalidCredential
	}
	customer, err := accounts.CustomerBySubject(c.Context(), identity.Subject)
	if err != nil {
		return 0, err
	}
	return customer.ID, nil
}

// currentBankerID resolves the token subject to a banker id
func currentBankerID(c *fiber.Ctx, accounts *services.AccountService) (uint, error) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return 0, domain.ErrInvalidCredential
	}
	banker, err := accounts.BankerBySubject(c.Context(), identity.Subject)
	if err != nil {
		return 0, err
	}
	return banker.ID, nil
}
