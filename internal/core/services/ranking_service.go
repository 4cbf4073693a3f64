package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"

	"gorm.io/gorm"
)

const (
	// RecentlyAnsweredLimit is the size of the "recently answered" ranking
	RecentlyAnsweredLimit = 3
	// TodayTopLimit is the size of today's most viewed ranking
	TodayTopLimit = 6
)

// RankingService serves the read-only question listings.
// Every location argument treats "" as all locations.
type RankingService struct {
	questionRepo repositories.QuestionRepository
	categoryRepo repositories.CategoryRepository
	branchRepo   repositories.BranchRepository
	now          func() time.Time
}

// NewRankingService creates a new ranking service
func NewRankingService(
	questionRepo repositories.QuestionRepository,
	categoryRepo repositories.CategoryRepository,
	branchRepo repositories.BranchRepository,
) *RankingService {
	return &RankingService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		branchRepo:   branchRepo,
		now:          time.Now,
	}
}

// ByLocation lists a location's questions in id order
func (s *RankingService) ByLocation(ctx context.Context, location string) ([]*models.QuestionSummary, error) {
	return s.list(ctx, repositories.QuestionQuery{Location: location})
}

// Latest lists questions newest first
func (s *RankingService) Latest(ctx context.Context, location string) ([]*models.QuestionSummary, error) {
	return s.list(ctx, repositories.QuestionQuery{Location: location, Order: repositories.OrderLatest})
}

// RecentlyAnswered lists the three questions answered most recently.
// Questions without an answer are not part of this ranking.
func (s *RankingService) RecentlyAnswered(ctx context.Context, location string) ([]*models.QuestionSummary, error) {
	return s.list(ctx, repositories.QuestionQuery{
		Location: location,
		Order:    repositories.OrderRecentlyAnswered,
		Limit:    RecentlyAnsweredLimit,
	})
}

// MostLiked lists questions by like count
func (s *RankingService) MostLiked(ctx context.Context, location string) ([]*models.QuestionSummary, error) {
	return s.list(ctx, repositories.QuestionQuery{Location: location, Order: repositories.OrderLikes})
}

// MostHelpful lists questions by their answer's good count; unanswered questions come last
func (s *RankingService) MostHelpful(ctx context.Context, location string) ([]*models.QuestionSummary, error) {
	return s.list(ctx, repositories.QuestionQuery{Location: location, Order: repositories.OrderGoodCount})
}

// ByCategory lists a category's questions in a location
func (s *RankingService) ByCategory(ctx context.Context, categoryName, location string) ([]*models.QuestionSummary, error) {
	category, err := s.categoryRepo.GetByName(ctx, strings.TrimSpace(categoryName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return s.list(ctx, repositories.QuestionQuery{Location: location, CategoryID: category.ID})
}

// ByCustomer lists a customer's questions. A customer with no questions is
// reported as ErrNoCustomerQuestions rather than an empty list.
func (s *RankingService) ByCustomer(ctx context.Context, customerID uint) ([]*models.QuestionSummary, error) {
	summaries, err := s.list(ctx, repositories.QuestionQuery{CustomerID: customerID, Order: repositories.OrderLatest})
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, domain.ErrNoCustomerQuestions
	}
	return summaries, nil
}

// Search matches term against title or content inside a location
func (s *RankingService) Search(ctx context.Context, location, term string) ([]*models.QuestionSummary, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.list(ctx, repositories.QuestionQuery{Location: location, Term: term, Order: repositories.OrderLatest})
}

// ByBranchLatest maps a branch to its location and lists that location newest first
func (s *RankingService) ByBranchLatest(ctx context.Context, branchName string) ([]*models.QuestionSummary, error) {
	branch, err := s.branchRepo.GetByBranchName(ctx, strings.TrimSpace(branchName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, err
	}
	return s.Latest(ctx, branch.Location)
}

// TodayTop returns the six most viewed questions created during the current calendar day
func (s *RankingService) TodayTop(ctx context.Context, location string) ([]*models.TodayQuestion, error) {
	from, to := dayBounds(s.now())

	questions, err := s.questionRepo.List(ctx, repositories.QuestionQuery{
		Location:    location,
		CreatedFrom: from,
		CreatedTo:   to,
		Order:       repositories.OrderViews,
		Limit:       TodayTopLimit,
	})
	if err != nil {
		return nil, err
	}

	top := make([]*models.TodayQuestion, 0, len(questions))
	for _, q := range questions {
		top = append(top, &models.TodayQuestion{
			QuestionID: q.ID,
			Title:      q.Title,
			ViewCount:  q.ViewCount,
		})
	}
	return top, nil
}

func (s *RankingService) list(ctx context.Context, query repositories.QuestionQuery) ([]*models.QuestionSummary, error) {
	questions, err := s.questionRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		summaries = append(summaries, q.ToSummary())
	}
	return summaries, nil
}

// dayBounds returns [start of day, start of next day) in t's location
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
