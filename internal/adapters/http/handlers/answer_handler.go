package handlers

import (
	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnswerHandler handles banker answer endpoints
type AnswerHandler struct {
	answers  *services.AnswerService
	accounts *services.AccountService
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(answers *services.AnswerService, accounts *services.AccountService) *AnswerHandler {
	return &AnswerHandler{
		answers:  answers,
		accounts: accounts,
	}
}

// AnswerRequest represents answer request body
type AnswerRequest struct {
	Content string `json:"content"`
}

// AddAnswer answers a question; a question has at most one answer
// @Summary Answer a question
// @Tags Answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param body body AnswerRequest true "Answer"
// @Success 201 {object} response.Response{data=models.AnswerResponse}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /questions/{id}/answer [post]
func (h *AnswerHandler) AddAnswer(c *fiber.Ctx) error {
	questionID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid question ID")
	}

	bankerID, err := currentBankerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve banker")
	}

	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	answer, err := h.answers.AddAnswer(c.Context(), questionID, bankerID, req.Content)
	if err != nil {
		return fail(c, err, "Failed to add answer")
	}

	return response.Created(c, "Answer created successfully", answer)
}

// UpdateAnswer edits the banker's own answer
// @Summary Update an answer
// @Tags Answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Param body body AnswerRequest true "Answer"
// @Success 200 {object} response.Response{data=models.AnswerResponse}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /answers/{id} [put]
func (h *AnswerHandler) UpdateAnswer(c *fiber.Ctx) error {
	answerID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid answer ID")
	}

	bankerID, err := currentBankerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve banker")
	}

	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	answer, err := h.answers.UpdateAnswer(c.Context(), answerID, bankerID, req.Content)
	if err != nil {
		return fail(c, err, "Failed to update answer")
	}

	return response.Success(c, "Answer updated successfully", answer)
}

// DeleteAnswer deletes the banker's own answer and its good votes
// @Summary Delete an answer
// @Tags Answers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /answers/{id} [delete]
func (h *AnswerHandler) DeleteAnswer(c *fiber.Ctx) error {
	answerID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid answer ID")
	}

	bankerID, err := currentBankerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve banker")
	}

	if err := h.answers.DeleteAnswer(c.Context(), answerID, bankerID); err != nil {
		return fail(c, err, "Failed to delete answer")
	}

	return response.Success(c, "Answer deleted successfully", nil)
}
