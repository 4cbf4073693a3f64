package repositories

import (
	"context"
	"errors"
	"fmt"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySQL error numbers that mean a concurrent writer won
const (
	mysqlDuplicateEntry  = 1062
	mysqlLockDeadlock    = 1213
	mysqlLockWaitTimeout = 1205
)

// engagementRepository implements EngagementStore interface
type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement store
func NewEngagementRepository(db *gorm.DB) EngagementStore {
	return &engagementRepository{db: db}
}

// WithinAnswer runs fn in a transaction. LoadAnswer takes a row lock on the
// answer, so toggles on the same answer queue behind each other.
func (r *engagementRepository) WithinAnswer(ctx context.Context, answerID uint, fn func(tx EngagementTx) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&engagementTx{tx: tx})
	})
	if isConflictError(err) {
		return fmt.Errorf("%w: %v", domain.ErrConflictingVoteState, err)
	}
	return err
}

// VoteExists checks for a live vote on (answer, customer)
func (r *engagementRepository) VoteExists(ctx context.Context, answerID, customerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AnswerGood{}).
		Where("answer_id = ? AND customer_id = ?", answerID, customerID).
		Count(&count).Error
	return count > 0, err
}

// IncrementViewCount bumps view_count in SQL so concurrent readers never lose an update
func (r *engagementRepository) IncrementViewCount(ctx context.Context, questionID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", questionID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type engagementTx struct {
	tx *gorm.DB
}

func (t *engagementTx) LoadAnswer(id uint) (*models.Answer, error) {
	var answer models.Answer
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (t *engagementTx) SaveAnswer(answer *models.Answer) error {
	return t.tx.Model(&models.Answer{}).
		Where("id = ?", answer.ID).
		UpdateColumn("good_count", answer.GoodCount).Error
}

func (t *engagementTx) FindVote(answerID, customerID uint) (*models.AnswerGood, error) {
	var vote models.AnswerGood
	err := t.tx.Where("answer_id = ? AND customer_id = ?", answerID, customerID).Take(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (t *engagementTx) SaveVote(vote *models.AnswerGood) error {
	return t.tx.Create(vote).Error
}

func (t *engagementTx) DeleteVote(vote *models.AnswerGood) error {
	return t.tx.Delete(&models.AnswerGood{}, vote.ID).Error
}

// Error handling utils

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isConflictError(err error) bool {
	if err == nil {
		return false
	}
	if isDuplicateError(err) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlLockDeadlock || mysqlErr.Number == mysqlLockWaitTimeout
	}
	return false
}
