package handlers

import (
	"context"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/pagination"
	"hana-qna/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RankingHandler handles the read-only question listings.
// Every listing takes an optional ?location= filter (empty means all locations)
// and ?page= / ?limit= over the ordered result.
type RankingHandler struct {
	ranking  *services.RankingService
	accounts *services.AccountService
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(ranking *services.RankingService, accounts *services.AccountService) *RankingHandler {
	return &RankingHandler{
		ranking:  ranking,
		accounts: accounts,
	}
}

type listFunc func(ctx context.Context, location string) ([]*models.QuestionSummary, error)

// list runs fn and returns the requested page of its ordered result
func (h *RankingHandler) list(c *fiber.Ctx, fn listFunc) error {
	questions, err := fn(c.Context(), c.Query("location"))
	if err != nil {
		return fail(c, err, "Failed to list questions")
	}

	params := pagination.GetParams(c)
	start, end := params.Window(len(questions))

	return response.Success(c, "Questions retrieved successfully", fiber.Map{
		"questions": questions[start:end],
		"total":     len(questions),
		"meta":      pagination.GetMeta(params, len(questions)),
	})
}

// ByLocation lists questions in insertion order
// @Summary Questions by location
// @Tags Ranking
// @Produce json
// @Param location query string false "Location"
// @Success 200 {object} response.Response
// @Router /questions [get]
func (h *RankingHandler) ByLocation(c *fiber.Ctx) error {
	return h.list(c, h.ranking.ByLocation)
}

// Latest lists questions newest first
// @Summary Latest questions
// @Tags Ranking
// @Produce json
// @Param location query string false "Location"
// @Success 200 {object} response.Response
// @Router /questions/latest [get]
func (h *RankingHandler) Latest(c *fiber.Ctx) error {
	return h.list(c, h.ranking.Latest)
}

// RecentlyAnswered lists the three most recently answered questions
// @Summary Recently answered questions
// @Tags Ranking
// @Produce json
// @Param location query string false "Location"
// @Success 200 {object} response.Response
// @Router /questions/recently-answered [get]
func (h *RankingHandler) RecentlyAnswered(c *fiber.Ctx) error {
	return h.list(c, h.ranking.RecentlyAnswered)
}

// MostLiked lists questions by like count
// @Summary Most liked questions
// @Tags Ranking
// @Produce json
// @Param location query string false "Location"
// @Success 200 {object} response.Response
// @Router /questions/most-liked [get]
func (h *RankingHandler) MostLiked(c *fiber.Ctx) error {
	return h.list(c, h.ranking.MostLiked)
}

// MostHelpful lists questions by the answer's good count, unanswered last
// @Summary Most helpful questions
// @Tags Ranking
// @Produce json
// @Param location query string false "Location"
// @Success 200 {object} response.Response
// @Router /questions/most-helpful [get]
func (h *RankingHandler) MostHelpful(c *fiber.Ctx) error {
	return h.list(c, h.ranking.MostHelpful)
}

// Search lists questions whose title or content contains ?term=
// @Summary Search questions
// @Tags Ranking
// @Produce json
// @Param term query string true "Search term"
// @Param location query string false "Location"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /questions/search [get]
func (h *RankingHandler) Search(c *fiber.Ctx) error {
	term := c.Query("term")
	return h.list(c, func(ctx context.Context, location string) ([]*models.QuestionSummary, error) {
		return h.ranking.Search(ctx, location, term)
	})
}

// TodayTop lists today's most viewed questions
// @Summary Today's top questions
// @Tags Ranking
// @Produce json
// @Param location query string false "Location"
// @Success 200 {object} response.Response
// @Router /questions/today-top [get]
func (h *RankingHandler) TodayTop(c *fiber.Ctx) error {
	top, err := h.ranking.TodayTop(c.Context(), c.Query("location"))
	if err != nil {
		return fail(c, err, "Failed to list today's top questions")
	}

	return response.Success(c, "Today's top questions retrieved successfully", fiber.Map{
		"questions": top,
		"total":     len(top),
	})
}

// ByCategory lists a category's questions
// @Summary Questions by category
// @Tags Ranking
// @Produce json
// @Param name path string true "Category name"
// @Param location query string false "Location"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{name}/questions [get]
func (h *RankingHandler) ByCategory(c *fiber.Ctx) error {
	name := c.Params("name")
	return h.list(c, func(ctx context.Context, location string) ([]*models.QuestionSummary, error) {
		return h.ranking.ByCategory(ctx, name, location)
	})
}

// ByBranch lists the questions of a branch's location, newest first
// @Summary Questions near a branch
// @Tags Ranking
// @Produce json
// @Param name path string true "Branch name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /branches/{name}/questions [get]
func (h *RankingHandler) ByBranch(c *fiber.Ctx) error {
	name := c.Params("name")
	return h.list(c, func(ctx context.Context, _ string) ([]*models.QuestionSummary, error) {
		return h.ranking.ByBranchLatest(ctx, name)
	})
}

// MyQuestions lists the current customer's questions
// @Summary My questions
// @Tags Ranking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /me/questions [get]
func (h *RankingHandler) MyQuestions(c *fiber.Ctx) error {
	customerID, err := currentCustomerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve customer")
	}

	return h.list(c, func(ctx context.Context, _ string) ([]*models.QuestionSummary, error) {
		return h.ranking.ByCustomer(ctx, customerID)
	})
}
