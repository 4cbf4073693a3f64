package memory

import (
	"context"
	"errors"
	"fmt"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"

	"gorm.io/gorm"
)

type engagementStore struct {
	s *Store
}

// WithinAnswer holds the answer's lock for the whole unit of work and
// applies the staged writes only when fn succeeds.
func (e *engagementStore) WithinAnswer(ctx context.Context, answerID uint, fn func(tx repositories.EngagementTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := e.s.answerLock(answerID)
	lock.Lock()
	defer lock.Unlock()

	tx := &memTx{
		s:       e.s,
		answers: make(map[uint]models.Answer),
		deleted: make(map[uint]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}

	err := tx.commit()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domain.ErrConflictingVoteState, err)
	}
	return err
}

func (e *engagementStore) VoteExists(_ context.Context, answerID, customerID uint) (bool, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	_, ok := e.s.findVote(answerID, customerID)
	return ok, nil
}

func (e *engagementStore) IncrementViewCount(_ context.Context, questionID uint) error {
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[questionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	q.ViewCount++
	s.questions[questionID] = q
	return nil
}

// findVote needs mu held
func (s *Store) findVote(answerID, customerID uint) (models.AnswerGood, bool) {
	for _, v := range s.votes {
		if v.AnswerID == answerID && v.CustomerID == customerID {
			return v, true
		}
	}
	return models.AnswerGood{}, false
}

// memTx stages writes until commit
type memTx struct {
	s       *Store
	answers map[uint]models.Answer
	saved   []models.AnswerGood
	deleted map[uint]bool
}

func (t *memTx) LoadAnswer(id uint) (*models.Answer, error) {
	if a, ok := t.answers[id]; ok {
		return &a, nil
	}

	t.s.mu.RLock()
	a, ok := t.s.answers[id]
	t.s.mu.RUnlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (t *memTx) SaveAnswer(answer *models.Answer) error {
	a := *answer
	a.Banker = models.Banker{}
	t.answers[a.ID] = a
	return nil
}

func (t *memTx) FindVote(answerID, customerID uint) (*models.AnswerGood, error) {
	for _, v := range t.saved {
		if v.AnswerID == answerID && v.CustomerID == customerID {
			v := v
			return &v, nil
		}
	}

	t.s.mu.RLock()
	v, ok := t.s.findVote(answerID, customerID)
	t.s.mu.RUnlock()
	if !ok || t.deleted[v.ID] {
		return nil, nil
	}
	return &v, nil
}

func (t *memTx) SaveVote(vote *models.AnswerGood) error {
	existing, err := t.FindVote(vote.AnswerID, vote.CustomerID)
	if err != nil {
		return err
	}
	if existing != nil {
		return gorm.ErrDuplicatedKey
	}
	t.saved = append(t.saved, *vote)
	return nil
}

func (t *memTx) DeleteVote(vote *models.AnswerGood) error {
	for i, v := range t.saved {
		if v.AnswerID == vote.AnswerID && v.CustomerID == vote.CustomerID {
			t.saved = append(t.saved[:i], t.saved[i+1:]...)
			return nil
		}
	}
	t.deleted[vote.ID] = true
	return nil
}

func (t *memTx) commit() error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range t.saved {
		if _, ok := s.answers[v.AnswerID]; !ok {
			return domain.ErrNoAnswerYet
		}
		if live, ok := s.findVote(v.AnswerID, v.CustomerID); ok && !t.deleted[live.ID] {
			return gorm.ErrDuplicatedKey
		}
	}

	for id := range t.deleted {
		delete(s.votes, id)
	}
	for _, v := range t.saved {
		v.ID = s.nextID("answer_goods")
		if v.CreatedAt.IsZero() {
			v.CreatedAt = s.now()
		}
		s.votes[v.ID] = v
	}
	for id, staged := range t.answers {
		row, ok := s.answers[id]
		if !ok {
			continue
		}
		row.GoodCount = staged.GoodCount
		s.answers[id] = row
	}
	return nil
}
