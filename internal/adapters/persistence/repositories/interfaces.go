package repositories

import (
	"context"
	"time"

	"hana-qna/internal/adapters/persistence/models"
)

// QuestionOrder selects the ordering of QuestionRepository.List
type QuestionOrder int

const (
	OrderNone QuestionOrder = iota
	// OrderLatest sorts by question created_at desc
	OrderLatest
	// OrderRecentlyAnswered sorts by answer created_at desc and drops unanswered questions
	OrderRecentlyAnswered
	// OrderLikes sorts by like_count desc
	OrderLikes
	// OrderGoodCount sorts by the answer's good_count desc, unanswered last
	OrderGoodCount
	// OrderViews sorts by view_count desc
	OrderViews
)

// QuestionQuery is the predicate for listing questions.
// Zero values mean "no filter". Ties always break by id asc.
type QuestionQuery struct {
	Location    string
	CategoryID  uint
	CustomerID  uint
	Term        string
	CreatedFrom time.Time
	CreatedTo   time.Time
	Order       QuestionOrder
	Limit       int
}

// QuestionRepository defines question repository interface.
// List and GetByID preload customer, category, answer (with banker), comments and images.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question, images []models.Image) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, question *models.Question, images []models.Image) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query QuestionQuery) ([]*models.Question, error)
}

// AnswerRepository defines answer repository interface
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id uint) (*models.Answer, error)
	GetByQuestionID(ctx context.Context, questionID uint) (*models.Answer, error)
	UpdateContent(ctx context.Context, answer *models.Answer) error
	Delete(ctx context.Context, id uint) error
}

// EngagementStore owns the counter columns and vote records.
// WithinAnswer runs fn as one unit of work serialized per answer; a
// non-nil error from fn discards every write made through tx.
type EngagementStore interface {
	WithinAnswer(ctx context.Context, answerID uint, fn func(tx EngagementTx) error) error
	VoteExists(ctx context.Context, answerID, customerID uint) (bool, error)
	IncrementViewCount(ctx context.Context, questionID uint) error
}

// EngagementTx is the view of the store inside WithinAnswer.
// FindVote returns (nil, nil) when no vote exists.
type EngagementTx interface {
	LoadAnswer(id uint) (*models.Answer, error)
	SaveAnswer(answer *models.Answer) error
	FindVote(answerID, customerID uint) (*models.AnswerGood, error)
	SaveVote(vote *models.AnswerGood) error
	DeleteVote(vote *models.AnswerGood) error
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// BankerRepository defines banker repository interface
type BankerRepository interface {
	Create(ctx context.Context, banker *models.Banker) error
	GetByID(ctx context.Context, id uint) (*models.Banker, error)
	GetByEmail(ctx context.Context, email string) (*models.Banker, error)
}

// CategoryRepository defines category repository interface
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

// CommentRepository defines comment repository interface
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
}

// BranchRepository defines branch-location mapping repository interface
type BranchRepository interface {
	Create(ctx context.Context, branch *models.BranchLocation) error
	GetByBranchName(ctx context.Context, branchName string) (*models.BranchLocation, error)
}

// ReservationRepository defines reservation repository interface
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
}
