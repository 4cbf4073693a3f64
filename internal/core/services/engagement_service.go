package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"
	"hana-qna/internal/pkg/metrics"

	"gorm.io/gorm"
)

// maxToggleAttempts bounds the retries of a toggle that lost a race
const maxToggleAttempts = 3

// EngagementService implements the good-vote toggle and the view counter
type EngagementService struct {
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	customerRepo repositories.CustomerRepository
	store        repositories.EngagementStore
	publisher    EventPublisher
	metrics      metrics.Recorder
	now          func() time.Time
}

// NewEngagementService creates a new engagement service.
// publisher may be nil, in which case no events are sent.
func NewEngagementService(
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	customerRepo repositories.CustomerRepository,
	store repositories.EngagementStore,
	publisher EventPublisher,
	recorder metrics.Recorder,
) *EngagementService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &EngagementService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		customerRepo: customerRepo,
		store:        store,
		publisher:    publisher,
		metrics:      recorder,
		now:          time.Now,
	}
}

// ToggleResult is the vote state after a toggle
type ToggleResult struct {
	Checked   bool  `json:"checked"`
	GoodCount int64 `json:"good_count"`
}

// ToggleGood flips the customer's good vote on the question's answer.
// The vote record and the answer's good count change in one unit of work.
func (s *EngagementService) ToggleGood(ctx context.Context, questionID, customerID uint) (*ToggleResult, error) {
	// 1. Question
	if err := s.ensureQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	// 2. Customer
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	// 3. Answer
	answer, err := s.answerOf(ctx, questionID)
	if err != nil {
		return nil, err
	}

	// 4. Toggle, retrying a bounded number of times on a lost race
	var result *ToggleResult
	for attempt := 1; ; attempt++ {
		result, err = s.toggleOnce(ctx, answer.ID, customerID)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflictingVoteState) {
			return nil, err
		}
		s.metrics.RecordVoteConflict()
		if attempt >= maxToggleAttempts {
			log.Printf("❌ Vote conflict on answer %d by customer %d after %d attempts: %v", answer.ID, customerID, attempt, err)
			return nil, err
		}
		log.Printf("⚠️ Vote conflict on answer %d by customer %d, retrying (%d/%d)", answer.ID, customerID, attempt, maxToggleAttempts)
	}

	s.metrics.RecordGoodVote(result.Checked)
	publish(ctx, s.publisher, domain.EventGoodToggled, &domain.GoodToggledEvent{
		QuestionID: questionID,
		AnswerID:   answer.ID,
		CustomerID: customerID,
		Checked:    result.Checked,
		GoodCount:  result.GoodCount,
		OccurredAt: s.now(),
	})

	return result, nil
}

func (s *EngagementService) toggleOnce(ctx context.Context, answerID, customerID uint) (*ToggleResult, error) {
	result := &ToggleResult{}

	err := s.store.WithinAnswer(ctx, answerID, func(tx repositories.EngagementTx) error {
		answer, err := tx.LoadAnswer(answerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// deleted since step 3
				return domain.ErrNoAnswerYet
			}
			return err
		}

		vote, err := tx.FindVote(answerID, customerID)
		if err != nil {
			return err
		}

		if vote == nil {
			// vote
			if err := tx.SaveVote(&models.AnswerGood{AnswerID: answerID, CustomerID: customerID}); err != nil {
				return err
			}
			answer.IncrementGood()
			if err := tx.SaveAnswer(answer); err != nil {
				return err
			}
			result.Checked = true
		} else {
			// un-vote
			answer.DecrementGood()
			if err := tx.SaveAnswer(answer); err != nil {
				return err
			}
			if err := tx.DeleteVote(vote); err != nil {
				return err
			}
		}

		result.GoodCount = answer.GoodCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IsGoodChecked reports whether the customer has a live good vote on the
// question's answer. A question without an answer is never checked.
func (s *EngagementService) IsGoodChecked(ctx context.Context, questionID, customerID uint) (bool, error) {
	if err := s.ensureQuestion(ctx, questionID); err != nil {
		return false, err
	}
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return false, err
	}

	answer, err := s.answerOf(ctx, questionID)
	if err != nil {
		if errors.Is(err, domain.ErrNoAnswerYet) {
			return false, nil
		}
		return false, err
	}

	return s.store.VoteExists(ctx, answer.ID, customerID)
}

// GetOneQuestion returns the question detail. It is not a pure read: every
// call increments the question's view count by exactly one.
func (s *EngagementService) GetOneQuestion(ctx context.Context, questionID uint) (*models.QuestionDetail, error) {
	if err := s.store.IncrementViewCount(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	s.metrics.RecordQuestionView()

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return question.ToDetail(), nil
}

func (s *EngagementService) ensureQuestion(ctx context.Context, questionID uint) error {
	exists, err := s.questionRepo.Exists(ctx, questionID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (s *EngagementService) ensureCustomer(ctx context.Context, customerID uint) error {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCustomerNotFound
		}
		return err
	}
	return nil
}

func (s *EngagementService) answerOf(ctx context.Context, questionID uint) (*models.Answer, error) {
	answer, err := s.answerRepo.GetByQuestionID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoAnswerYet
		}
		return nil, err
	}
	return answer, nil
}

// publish sends an event on a best-effort basis; a nil publisher is a no-op
func publish(ctx context.Context, publisher EventPublisher, routingKey string, event interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("⚠️ Failed to publish %s: %v", routingKey, err)
	}
}
