// Package memory is an in-process implementation of the repository ports.
// It backs STORE_DRIVER=memory and the service tests, and mirrors the GORM
// adapters' semantics: gorm.ErrRecordNotFound for missing rows,
// gorm.ErrDuplicatedKey for unique violations, and the same list ordering.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
)

// Store holds every table in memory. All reads hand out copies.
type Store struct {
	mu sync.RWMutex

	customers    map[uint]models.Customer
	bankers      map[uint]models.Banker
	categories   map[uint]models.Category
	questions    map[uint]models.Question
	answers      map[uint]models.Answer
	votes        map[uint]models.AnswerGood
	comments     map[uint]models.Comment
	images       map[uint]models.Image
	branches     map[uint]models.BranchLocation
	reservations map[uint]models.Reservation
	seq          map[string]uint

	lockMu      sync.Mutex
	answerLocks map[uint]*sync.Mutex

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		customers:    make(map[uint]models.Customer),
		bankers:      make(map[uint]models.Banker),
		categories:   make(map[uint]models.Category),
		questions:    make(map[uint]models.Question),
		answers:      make(map[uint]models.Answer),
		votes:        make(map[uint]models.AnswerGood),
		comments:     make(map[uint]models.Comment),
		images:       make(map[uint]models.Image),
		branches:     make(map[uint]models.BranchLocation),
		reservations: make(map[uint]models.Reservation),
		seq:          make(map[string]uint),
		answerLocks:  make(map[uint]*sync.Mutex),
		now:          time.Now,
	}
}

// Questions returns the question repository
func (s *Store) Questions() repositories.QuestionRepository { return &questionRepo{s} }

// Answers returns the answer repository
func (s *Store) Answers() repositories.AnswerRepository { return &answerRepo{s} }

// Engagement returns the engagement store
func (s *Store) Engagement() repositories.EngagementStore { return &engagementStore{s} }

// Customers returns the customer repository
func (s *Store) Customers() repositories.CustomerRepository { return &customerRepo{s} }

// Bankers returns the banker repository
func (s *Store) Bankers() repositories.BankerRepository { return &bankerRepo{s} }

// Categories returns the category repository
func (s *Store) Categories() repositories.CategoryRepository { return &categoryRepo{s} }

// Comments returns the comment repository
func (s *Store) Comments() repositories.CommentRepository { return &commentRepo{s} }

// Branches returns the branch repository
func (s *Store) Branches() repositories.BranchRepository { return &branchRepo{s} }

// Reservations returns the reservation repository
func (s *Store) Reservations() repositories.ReservationRepository { return &reservationRepo{s} }

// nextID must be called with mu held for writing
func (s *Store) nextID(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) answerLock(id uint) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	l, ok := s.answerLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.answerLocks[id] = l
	}
	return l
}

// stamp fills zero timestamps the way gorm's autoCreateTime does
func (s *Store) stamp(created, updated *time.Time) {
	now := s.now()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil && updated.IsZero() {
		if created != nil {
			*updated = *created
		} else {
			*updated = now
		}
	}
}

// ============================================================
// Relation assembly (read lock held)
// ============================================================

func (s *Store) answerFor(questionID uint) (models.Answer, bool) {
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return models.Answer{}, false
}

func (s *Store) withBanker(a models.Answer) models.Answer {
	a.Banker = s.bankers[a.BankerID]
	return a
}

func (s *Store) assemble(q models.Question) *models.Question {
	q.Customer = s.customers[q.CustomerID]
	q.Category = s.categories[q.CategoryID]

	q.Answer = nil
	if a, ok := s.answerFor(q.ID); ok {
		a = s.withBanker(a)
		q.Answer = &a
	}

	q.Comments = nil
	for _, c := range s.comments {
		if c.QuestionID == q.ID {
			c.Customer = s.customers[c.CustomerID]
			q.Comments = append(q.Comments, c)
		}
	}
	sort.Slice(q.Comments, func(i, j int) bool { return q.Comments[i].ID < q.Comments[j].ID })

	q.Images = nil
	for _, img := range s.images {
		if img.QuestionID == q.ID {
			q.Images = append(q.Images, img)
		}
	}
	sort.Slice(q.Images, func(i, j int) bool { return q.Images[i].ID < q.Images[j].ID })

	return &q
}

// matches applies the QuestionQuery filters; q must be assembled
func matches(q *models.Question, query repositories.QuestionQuery) bool {
	if query.Location != "" && q.Location != query.Location {
		return false
	}
	if query.CategoryID != 0 && q.CategoryID != query.CategoryID {
		return false
	}
	if query.CustomerID != 0 && q.CustomerID != query.CustomerID {
		return false
	}
	if query.Term != "" {
		term := strings.ToLower(query.Term)
		if !strings.Contains(strings.ToLower(q.Title), term) &&
			!strings.Contains(strings.ToLower(q.Content), term) {
			return false
		}
	}
	if !query.CreatedFrom.IsZero() && q.CreatedAt.Before(query.CreatedFrom) {
		return false
	}
	if !query.CreatedTo.IsZero() && !q.CreatedAt.Before(query.CreatedTo) {
		return false
	}
	if query.Order == repositories.OrderRecentlyAnswered && q.Answer == nil {
		return false
	}
	return true
}

// less orders two assembled questions the way the SQL ORDER BY does
func less(a, b *models.Question, order repositories.QuestionOrder) bool {
	switch order {
	case repositories.OrderLatest:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	case repositories.OrderRecentlyAnswered:
		if !a.Answer.CreatedAt.Equal(b.Answer.CreatedAt) {
			return a.Answer.CreatedAt.After(b.Answer.CreatedAt)
		}
	case repositories.OrderLikes:
		if a.LikeCount != b.LikeCount {
			return a.LikeCount > b.LikeCount
		}
	case repositories.OrderGoodCount:
		if (a.Answer == nil) != (b.Answer == nil) {
			return a.Answer != nil
		}
		if a.Answer != nil && a.Answer.GoodCount != b.Answer.GoodCount {
			return a.Answer.GoodCount > b.Answer.GoodCount
		}
	case repositories.OrderViews:
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
	}
	return a.ID < b.ID
}
