package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"
	"hana-qna/internal/pkg/sanitize"

	"gorm.io/gorm"
)

// AnswerService handles banker answers
type AnswerService struct {
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	bankerRepo   repositories.BankerRepository
	publisher    EventPublisher
	now          func() time.Time
}

// NewAnswerService creates a new answer service
func NewAnswerService(
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	bankerRepo repositories.BankerRepository,
	publisher EventPublisher,
) *AnswerService {
	return &AnswerService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		bankerRepo:   bankerRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// AddAnswer answers a question. A question takes one answer only.
func (s *AnswerService) AddAnswer(ctx context.Context, questionID, bankerID uint, content string) (*models.AnswerResponse, error) {
	// 1. Validate input
	content = sanitize.Body(content)
	if content == "" {
		return nil, fmt.Errorf("%w: answer content is required", domain.ErrInvalidInput)
	}

	// 2. Question
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	if question.Answer != nil {
		return nil, domain.ErrAnswerExists
	}

	// 3. Banker
	banker, err := s.bankerRepo.GetByID(ctx, bankerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBankerNotFound
		}
		return nil, err
	}

	// 4. Create; the unique index on question_id settles a race between bankers
	answer := &models.Answer{
		QuestionID: questionID,
		BankerID:   bankerID,
		Content:    content,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAnswerExists
		}
		return nil, err
	}
	answer.Banker = *banker

	log.Printf("✅ Question %d answered by banker %d", questionID, bankerID)

	publish(ctx, s.publisher, domain.EventQuestionAnswered, &domain.QuestionAnsweredEvent{
		QuestionID: questionID,
		AnswerID:   answer.ID,
		BankerID:   bankerID,
		CustomerID: question.CustomerID,
		OccurredAt: answer.CreatedAt,
	})

	return answer.ToResponse(), nil
}

// UpdateAnswer rewrites an answer's content; only its banker may do so.
// The good count is left untouched.
func (s *AnswerService) UpdateAnswer(ctx context.Context, answerID, bankerID uint, content string) (*models.AnswerResponse, error) {
	content = sanitize.Body(content)
	if content == "" {
		return nil, fmt.Errorf("%w: answer content is required", domain.ErrInvalidInput)
	}

	answer, err := s.owned(ctx, answerID, bankerID)
	if err != nil {
		return nil, err
	}

	answer.Content = content
	answer.UpdatedAt = s.now()
	if err := s.answerRepo.UpdateContent(ctx, answer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, err
	}

	return answer.ToResponse(), nil
}

// DeleteAnswer removes an answer together with its good votes
func (s *AnswerService) DeleteAnswer(ctx context.Context, answerID, bankerID uint) error {
	if _, err := s.owned(ctx, answerID, bankerID); err != nil {
		return err
	}

	if err := s.answerRepo.Delete(ctx, answerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAnswerNotFound
		}
		return err
	}

	log.Printf("✅ Answer %d deleted", answerID)
	return nil
}

func (s *AnswerService) owned(ctx context.Context, answerID, bankerID uint) (*models.Answer, error) {
	answer, err := s.answerRepo.GetByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, err
	}
	if answer.BankerID != bankerID {
		return nil, domain.ErrForbidden
	}
	return answer, nil
}
