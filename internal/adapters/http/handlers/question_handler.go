package handlers

import (
	"io"
	"mime/multipart"
	"strings"

	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// uploadField is the multipart field carrying question attachments
const uploadField = "files"

// QuestionHandler handles question and comment endpoints
type QuestionHandler struct {
	questions  *services.QuestionService
	engagement *services.EngagementService
	accounts   *services.AccountService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(
	questions *services.QuestionService,
	engagement *services.EngagementService,
	accounts *services.AccountService,
) *QuestionHandler {
	return &QuestionHandler{
		questions:  questions,
		engagement: engagement,
		accounts:   accounts,
	}
}

// CommentRequest represents comment request body
type CommentRequest struct {
	Content string `json:"content"`
}

// AddQuestion creates a question with optional image attachments
// @Summary Ask a question
// @Description Multipart form; every file is stored before the question is saved
// @Tags Questions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param category_name formData string true "Category"
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param location formData string false "Location"
// @Param files formData file false "Attachments"
// @Success 201 {object} response.Response{data=models.QuestionDetail}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /questions [post]
func (h *QuestionHandler) AddQuestion(c *fiber.Ctx) error {
	customerID, err := currentCustomerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve customer")
	}

	var input services.QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	uploads, err := readUploads(c)
	if err != nil {
		return response.BadRequest(c, "Invalid attachment")
	}

	detail, err := h.questions.AddQuestion(c.Context(), customerID, &input, uploads)
	if err != nil {
		return fail(c, err, "Failed to add question")
	}

	return response.Created(c, "Question created successfully", detail)
}

// ModifyQuestion replaces a question's fields and attachments
// @Summary Modify a question
// @Tags Questions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} response.Response{data=models.QuestionDetail}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /questions/{id} [put]
func (h *QuestionHandler) ModifyQuestion(c *fiber.Ctx) error {
	questionID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid question ID")
	}

	customerID, err := currentCustomerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve customer")
	}

	var input services.QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	uploads, err := readUploads(c)
	if err != nil {
		return response.BadRequest(c, "Invalid attachment")
	}

	detail, err := h.questions.ModifyQuestion(c.Context(), questionID, customerID, &input, uploads)
	if err != nil {
		return fail(c, err, "Failed to modify question")
	}

	return response.Success(c, "Question modified successfully", detail)
}

// DeleteQuestion deletes a question with its answer, votes, comments and images
// @Summary Delete a question
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	questionID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid question ID")
	}

	customerID, err := currentCustomerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve customer")
	}

	if err := h.questions.DeleteQuestion(c.Context(), questionID, customerID); err != nil {
		return fail(c, err, "Failed to delete question")
	}

	return response.Success(c, "Question deleted successfully", nil)
}

// GetQuestion returns the question detail and counts one view
// @Summary Question detail
// @Tags Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} response.Response{data=models.QuestionDetail}
// @Failure 404 {object} response.Response
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	questionID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid question ID")
	}

	detail, err := h.engagement.GetOneQuestion(c.Context(), questionID)
	if err != nil {
		return fail(c, err, "Failed to get question")
	}

	return response.Success(c, "Question retrieved successfully", detail)
}

// AddComment adds a customer comment to a question
// @Summary Comment on a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} response.Response{data=models.CommentResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /questions/{id}/comments [post]
func (h *QuestionHandler) AddComment(c *fiber.Ctx) error {
	questionID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid question ID")
	}

	customerID, err := currentCustomerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve customer")
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	comment, err := h.questions.AddComment(c.Context(), questionID, customerID, req.Content)
	if err != nil {
		return fail(c, err, "Failed to add comment")
	}

	return response.Created(c, "Comment added successfully", comment)
}

// Categories lists question categories
// @Summary List categories
// @Tags Questions
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *QuestionHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.questions.Categories(c.Context())
	if err != nil {
		return fail(c, err, "Failed to list categories")
	}

	return response.Success(c, "Categories retrieved successfully", fiber.Map{
		"categories": categories,
	})
}

// readUploads reads the attachment parts of a multipart request.
// A non-multipart request has no attachments.
func readUploads(c *fiber.Ctx) ([]services.Upload, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	headers := form.File[uploadField]
	uploads := make([]services.Upload, 0, len(headers))
	for _, fh := range headers {
		content, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, services.Upload{Name: fh.Filename, Content: content})
	}
	return uploads, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
