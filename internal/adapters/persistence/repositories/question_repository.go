package repositories

import (
	"context"
	"strings"
	"time"

	"hana-qna/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ============================================================
// Question
// ============================================================

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// withRelations preloads everything the summary and detail projections read
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Category").
		Preload("Answer.Banker").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id ASC")
		}).
		Preload("Comments.Customer").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("images.id ASC")
		})
}

// Create inserts a question and its image rows in one transaction
func (r *questionRepository) Create(ctx context.Context, question *models.Question, images []models.Image) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(question).Error; err != nil {
			return err
		}
		return insertImages(tx, question.ID, images)
	})
}

// GetByID gets a question with all relations
func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := withRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Exists checks if a question exists
func (r *questionRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update writes the editable fields and replaces the image rows.
// Counters are never written here.
func (r *questionRepository) Update(ctx context.Context, question *models.Question, images []models.Image) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Question{}).
			Where("id = ?", question.ID).
			Updates(map[string]interface{}{
				"title":       question.Title,
				"content":     question.Content,
				"location":    question.Location,
				"category_id": question.CategoryID,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return insertImages(tx, question.ID, images)
	})
}

// Delete removes a question with its answer, votes, comments and images
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("question_id = ?", id)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&models.AnswerGood{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&models.Answer{}, &models.Comment{}, &models.Image{}} {
			if err := tx.Where("question_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Question{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List lists questions matching query in the requested order
func (r *questionRepository) List(ctx context.Context, query QuestionQuery) ([]*models.Question, error) {
	db := withRelations(r.db.WithContext(ctx)).
		Model(&models.Question{}).
		Select("questions.*")

	if query.Location != "" {
		db = db.Where("questions.location = ?", query.Location)
	}
	if query.CategoryID != 0 {
		db = db.Where("questions.category_id = ?", query.CategoryID)
	}
	if query.CustomerID != 0 {
		db = db.Where("questions.customer_id = ?", query.CustomerID)
	}
	if query.Term != "" {
		like := "%" + escapeLike(query.Term) + "%"
		db = db.Where("(questions.title LIKE ? OR questions.content LIKE ?)", like, like)
	}
	if !query.CreatedFrom.IsZero() {
		db = db.Where("questions.created_at >= ?", query.CreatedFrom)
	}
	if !query.CreatedTo.IsZero() {
		db = db.Where("questions.created_at < ?", query.CreatedTo)
	}

	switch query.Order {
	case OrderLatest:
		db = db.Order("questions.created_at DESC")
	case OrderRecentlyAnswered:
		db = db.Joins("JOIN answers ON answers.question_id = questions.id").
			Order("answers.created_at DESC")
	case OrderLikes:
		db = db.Order("questions.like_count DESC")
	case OrderGoodCount:
		db = db.Joins("LEFT JOIN answers ON answers.question_id = questions.id").
			Order("answers.id IS NULL").
			Order("answers.good_count DESC")
	case OrderViews:
		db = db.Order("questions.view_count DESC")
	}
	db = db.Order("questions.id ASC")

	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var questions []*models.Question
	if err := db.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func insertImages(tx *gorm.DB, questionID uint, images []models.Image) error {
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ID = 0
		images[i].QuestionID = questionID
	}
	return tx.Create(&images).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ============================================================
// Answer
// ============================================================

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Create inserts an answer; a second answer for the same question
// fails with gorm.ErrDuplicatedKey
func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(answer).Error
	if isDuplicateError(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *answerRepository) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.WithContext(ctx).Preload("Banker").Where("id = ?", id).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) GetByQuestionID(ctx context.Context, questionID uint) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.WithContext(ctx).Preload("Banker").Where("question_id = ?", questionID).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// UpdateContent writes content and updated_at only; good_count belongs to the engagement store
func (r *answerRepository) UpdateContent(ctx context.Context, answer *models.Answer) error {
	res := r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Where("id = ?", answer.ID).
		Updates(map[string]interface{}{
			"content":    answer.Content,
			"updated_at": answer.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an answer and its vote records. The answer row is locked
// first so no toggle can add a vote in between.
func (r *answerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answer models.Answer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&answer).Error; err != nil {
			return err
		}
		if err := tx.Where("answer_id = ?", id).Delete(&models.AnswerGood{}).Error; err != nil {
			return err
		}
		return tx.Delete(&answer).Error
	})
}
