package handlers

import (
	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GoodHandler handles good vote endpoints
type GoodHandler struct {
	engagement *services.EngagementService
	accounts   *services.AccountService
}

// NewGoodHandler creates a new good vote handler
func NewGoodHandler(engagement *services.EngagementService, accounts *services.AccountService) *GoodHandler {
	return &GoodHandler{
		engagement: engagement,
		accounts:   accounts,
	}
}

// ToggleGood votes or un-votes the answer of a question
// @Summary Toggle good vote
// @Tags Good
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} response.Response{data=services.ToggleResult}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /questions/{id}/good [post]
func (h *GoodHandler) ToggleGood(c *fiber.Ctx) error {
	questionID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid question ID")
	}

	customerID, err := currentCustomerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve customer")
	}

	result, err := h.engagement.ToggleGood(c.Context(), questionID, customerID)
	if err != nil {
		return fail(c, err, "Failed to toggle good")
	}

	return response.Success(c, "Good toggled successfully", result)
}

// IsGoodChecked reports whether the customer has a live vote
// @Summary Good vote state
// @Tags Good
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /questions/{id}/good [get]
func (h *GoodHandler) IsGoodChecked(c *fiber.Ctx) error {
	questionID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid question ID")
	}

	customerID, err := currentCustomerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve customer")
	}

	checked, err := h.engagement.IsGoodChecked(c.Context(), questionID, customerID)
	if err != nil {
		return fail(c, err, "Failed to read good state")
	}

	return response.Success(c, "Good state retrieved successfully", fiber.Map{
		"checked": checked,
	})
}
