package memory

import (
	"context"
	"sort"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

type questionRepo struct {
	s *Store
}

func (r *questionRepo) Create(_ context.Context, question *models.Question, images []models.Image) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	question.ID = s.nextID("questions")
	s.stamp(&question.CreatedAt, &question.UpdatedAt)

	row := *question
	row.Customer, row.Category, row.Answer, row.Comments, row.Images = models.Customer{}, models.Category{}, nil, nil, nil
	s.questions[row.ID] = row
	s.insertImages(row.ID, images)
	return nil
}

func (r *questionRepo) GetByID(_ context.Context, id uint) (*models.Question, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s.assemble(q), nil
}

func (r *questionRepo) Exists(_ context.Context, id uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.questions[id]
	return ok, nil
}

func (r *questionRepo) Update(_ context.Context, question *models.Question, images []models.Image) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.questions[question.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Title = question.Title
	row.Content = question.Content
	row.Location = question.Location
	row.CategoryID = question.CategoryID
	row.UpdatedAt = s.now()
	s.questions[row.ID] = row

	for id, img := range s.images {
		if img.QuestionID == row.ID {
			delete(s.images, id)
		}
	}
	s.insertImages(row.ID, images)
	return nil
}

// Delete holds the answer's lock like WithinAnswer does, so a toggle in
// flight finishes before the answer and its votes go away.
func (r *questionRepo) Delete(_ context.Context, id uint) error {
	s := r.s
	s.mu.RLock()
	a, hasAnswer := s.answerFor(id)
	s.mu.RUnlock()
	if hasAnswer {
		lock := s.answerLock(a.ID)
		lock.Lock()
		defer lock.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	if a, ok := s.answerFor(id); ok {
		s.deleteAnswer(a.ID)
	}
	for cid, c := range s.comments {
		if c.QuestionID == id {
			delete(s.comments, cid)
		}
	}
	for iid, img := range s.images {
		if img.QuestionID == id {
			delete(s.images, iid)
		}
	}
	delete(s.questions, id)
	return nil
}

func (r *questionRepo) List(_ context.Context, query repositories.QuestionQuery) ([]*models.Question, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Question, 0)
	for _, row := range s.questions {
		q := s.assemble(row)
		if matches(q, query) {
			result = append(result, q)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return less(result[i], result[j], query.Order)
	})

	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}
	return result, nil
}

// insertImages must be called with mu held for writing
func (s *Store) insertImages(questionID uint, images []models.Image) {
	for i := range images {
		images[i].ID = s.nextID("images")
		images[i].QuestionID = questionID
		s.images[images[i].ID] = images[i]
	}
}

// deleteAnswer removes an answer and its votes; mu held for writing
func (s *Store) deleteAnswer(id uint) {
	for vid, v := range s.votes {
		if v.AnswerID == id {
			delete(s.votes, vid)
		}
	}
	delete(s.answers, id)
}

// ============================================================
// Answer
// ============================================================

type answerRepo struct {
	s *Store
}

func (r *answerRepo) Create(_ context.Context, answer *models.Answer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.answerFor(answer.QuestionID); ok {
		return gorm.ErrDuplicatedKey
	}
	answer.ID = s.nextID("answers")
	s.stamp(&answer.CreatedAt, &answer.UpdatedAt)

	row := *answer
	row.Banker = models.Banker{}
	s.answers[row.ID] = row
	return nil
}

func (r *answerRepo) GetByID(_ context.Context, id uint) (*models.Answer, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.answers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a = s.withBanker(a)
	return &a, nil
}

func (r *answerRepo) GetByQuestionID(_ context.Context, questionID uint) (*models.Answer, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.answerFor(questionID)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a = s.withBanker(a)
	return &a, nil
}

func (r *answerRepo) UpdateContent(_ context.Context, answer *models.Answer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.answers[answer.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Content = answer.Content
	row.UpdatedAt = answer.UpdatedAt
	s.answers[row.ID] = row
	return nil
}

func (r *answerRepo) Delete(_ context.Context, id uint) error {
	s := r.s
	lock := s.answerLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.answers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.deleteAnswer(id)
	return nil
}
