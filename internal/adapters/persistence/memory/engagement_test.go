package memory

import (
	"context"
	"errors"
	"testing"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"
)

func TestWithinAnswer_AnswerGoneAtCommit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	s.questions[1] = models.Question{ID: 1}
	s.answers[1] = models.Answer{ID: 1, QuestionID: 1}

	err := s.Engagement().WithinAnswer(ctx, 1, func(tx repositories.EngagementTx) error {
		answer, err := tx.LoadAnswer(1)
		if err != nil {
			return err
		}

		// removed behind the answer lock
		s.mu.Lock()
		s.deleteAnswer(1)
		s.mu.Unlock()

		if err := tx.SaveVote(&models.AnswerGood{AnswerID: 1, CustomerID: 7}); err != nil {
			return err
		}
		answer.IncrementGood()
		return tx.SaveAnswer(answer)
	})
	if !errors.Is(err, domain.ErrNoAnswerYet) {
		t.Fatalf("err = %v, want ErrNoAnswerYet", err)
	}
	if len(s.votes) != 0 {
		t.Errorf("votes = %v, want none", s.votes)
	}
}

func TestWithinAnswer_ErrorDiscardsWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	s.answers[1] = models.Answer{ID: 1, QuestionID: 1, GoodCount: 2}
	boom := errors.New("boom")

	err := s.Engagement().WithinAnswer(ctx, 1, func(tx repositories.EngagementTx) error {
		if err := tx.SaveVote(&models.AnswerGood{AnswerID: 1, CustomerID: 7}); err != nil {
			return err
		}
		if err := tx.SaveAnswer(&models.Answer{ID: 1, QuestionID: 1, GoodCount: 3}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if len(s.votes) != 0 || s.answers[1].GoodCount != 2 {
		t.Errorf("writes leaked: votes %v, goodCount %d", s.votes, s.answers[1].GoodCount)
	}
}
