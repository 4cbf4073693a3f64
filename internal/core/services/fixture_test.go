package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"hana-qna/internal/adapters/persistence/memory"
	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/pkg/password"

	"golang.org/x/crypto/bcrypt"
)

const testPassword = "s3cret-pass"

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store
	pub   *recordingPublisher

	engagement *EngagementService
	ranking    *RankingService
	questions  *QuestionService
	answers    *AnswerService
	accounts   *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	pub := &recordingPublisher{}
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		store: store,
		pub:   pub,
	}
	f.engagement = NewEngagementService(store.Questions(), store.Answers(), store.Customers(), store.Engagement(), pub, nil)
	f.ranking = NewRankingService(store.Questions(), store.Categories(), store.Branches())
	f.questions = NewQuestionService(store.Questions(), store.Categories(), store.Customers(), store.Comments(), &fakeStorage{}, nil)
	f.answers = NewAnswerService(store.Questions(), store.Answers(), store.Bankers(), pub)
	f.accounts = NewAccountService(store.Customers(), store.Bankers())
	return f
}

func (f *fixture) hash() string {
	f.t.Helper()
	h, err := password.HashWithCost(testPassword, bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash: %v", err)
	}
	return h
}

func (f *fixture) customer(nickname string) *models.Customer {
	f.t.Helper()
	c := &models.Customer{
		Email:    nickname + "@example.com",
		Password: f.hash(),
		Name:     nickname,
		Nickname: nickname,
	}
	if err := f.store.Customers().Create(f.ctx, c); err != nil {
		f.t.Fatalf("create customer: %v", err)
	}
	return c
}

func (f *fixture) banker(name string) *models.Banker {
	f.t.Helper()
	b := &models.Banker{
		Email:      name + "@bank.example.com",
		Password:   f.hash(),
		Name:       name,
		BranchName: "Seongsu",
	}
	if err := f.store.Bankers().Create(f.ctx, b); err != nil {
		f.t.Fatalf("create banker: %v", err)
	}
	return b
}

func (f *fixture) category(name string) *models.Category {
	f.t.Helper()
	c := &models.Category{Name: name}
	if err := f.store.Categories().Create(f.ctx, c); err != nil {
		f.t.Fatalf("create category: %v", err)
	}
	return c
}

// question stores a question directly; opts may preset counters and timestamps
func (f *fixture) question(author *models.Customer, category *models.Category, location, title string, opts ...func(*models.Question)) *models.Question {
	f.t.Helper()
	q := &models.Question{
		CustomerID: author.ID,
		CategoryID: category.ID,
		Title:      title,
		Content:    "content of " + title,
		Location:   location,
	}
	for _, opt := range opts {
		opt(q)
	}
	if err := f.store.Questions().Create(f.ctx, q, nil); err != nil {
		f.t.Fatalf("create question: %v", err)
	}
	return q
}

// answer stores an answer directly with a preset good count
func (f *fixture) answer(q *models.Question, b *models.Banker, goodCount int64, createdAt time.Time) *models.Answer {
	f.t.Helper()
	a := &models.Answer{
		QuestionID: q.ID,
		BankerID:   b.ID,
		Content:    "answer to " + q.Title,
		GoodCount:  goodCount,
		CreatedAt:  createdAt,
	}
	if err := f.store.Answers().Create(f.ctx, a); err != nil {
		f.t.Fatalf("create answer: %v", err)
	}
	return a
}

func (f *fixture) goodCount(answerID uint) int64 {
	f.t.Helper()
	a, err := f.store.Answers().GetByID(f.ctx, answerID)
	if err != nil {
		f.t.Fatalf("get answer: %v", err)
	}
	return a.GoodCount
}

func (f *fixture) voted(answerID, customerID uint) bool {
	f.t.Helper()
	ok, err := f.store.Engagement().VoteExists(f.ctx, answerID, customerID)
	if err != nil {
		f.t.Fatalf("vote exists: %v", err)
	}
	return ok
}

func withCreatedAt(t time.Time) func(*models.Question) {
	return func(q *models.Question) { q.CreatedAt = t }
}

func withLikes(n int64) func(*models.Question) {
	return func(q *models.Question) { q.LikeCount = n }
}

func withViews(n int64) func(*models.Question) {
	return func(q *models.Question) { q.ViewCount = n }
}

// ============================================================
// Fakes
// ============================================================

type publishedEvent struct {
	key   string
	event interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, key string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: key, event: event})
	return nil
}

func (p *recordingPublisher) byKey(key string) []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []interface{}
	for _, e := range p.events {
		if e.key == key {
			out = append(out, e.event)
		}
	}
	return out
}

// fakeStorage fails every upload named in failOn
type fakeStorage struct {
	mu     sync.Mutex
	failOn map[string]bool
	saved  []string
}

func (s *fakeStorage) SaveFile(_ context.Context, name string, _ []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn[name] {
		return "", fmt.Errorf("bucket unavailable")
	}
	url := "https://files.example.com/" + name
	s.saved = append(s.saved, url)
	return url, nil
}
