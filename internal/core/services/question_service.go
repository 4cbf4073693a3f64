package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"
	"hana-qna/internal/pkg/metrics"
	"hana-qna/internal/pkg/sanitize"

	"gorm.io/gorm"
)

// QuestionService handles question authoring and comments
type QuestionService struct {
	questionRepo repositories.QuestionRepository
	categoryRepo repositories.CategoryRepository
	customerRepo repositories.CustomerRepository
	commentRepo  repositories.CommentRepository
	storage      FileStorage
	metrics      metrics.Recorder
}

// NewQuestionService creates a new question service
func NewQuestionService(
	questionRepo repositories.QuestionRepository,
	categoryRepo repositories.CategoryRepository,
	customerRepo repositories.CustomerRepository,
	commentRepo repositories.CommentRepository,
	storage FileStorage,
	recorder metrics.Recorder,
) *QuestionService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		customerRepo: customerRepo,
		commentRepo:  commentRepo,
		storage:      storage,
		metrics:      recorder,
	}
}

// QuestionInput represents question create/modify input
type QuestionInput struct {
	CategoryName string `json:"category_name" form:"category_name"`
	Title        string `json:"title" form:"title"`
	Content      string `json:"content" form:"content"`
	Location     string `json:"location" form:"location"`
}

func (in *QuestionInput) clean() (*QuestionInput, error) {
	out := &QuestionInput{
		CategoryName: strings.TrimSpace(in.CategoryName),
		Title:        sanitize.Line(in.Title),
		Content:      sanitize.Body(in.Content),
		Location:     sanitize.Line(in.Location),
	}
	if out.CategoryName == "" || out.Title == "" || out.Content == "" {
		return nil, fmt.Errorf("%w: category, title and content are required", domain.ErrInvalidInput)
	}
	return out, nil
}

// AddQuestion uploads the attachments and then stores the question with its
// image rows. If any upload fails nothing is stored.
func (s *QuestionService) AddQuestion(ctx context.Context, customerID uint, input *QuestionInput, uploads []Upload) (*models.QuestionDetail, error) {
	// 1. Validate input
	in, err := input.clean()
	if err != nil {
		return nil, err
	}

	// 2. Category
	category, err := s.category(ctx, in.CategoryName)
	if err != nil {
		return nil, err
	}

	// 3. Author
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	// 4. Upload files before anything is written
	images, err := s.saveFiles(ctx, uploads)
	if err != nil {
		return nil, err
	}

	// 5. Question and images in one transaction
	question := &models.Question{
		CustomerID: customerID,
		CategoryID: category.ID,
		Title:      in.Title,
		Content:    in.Content,
		Location:   in.Location,
	}
	if err := s.questionRepo.Create(ctx, question, images); err != nil {
		return nil, err
	}

	log.Printf("✅ Question %d created by customer %d (%d files)", question.ID, customerID, len(images))

	return s.detail(ctx, question.ID)
}

// ModifyQuestion rewrites the question's text and category and replaces its images.
// Only the author may modify a question.
func (s *QuestionService) ModifyQuestion(ctx context.Context, questionID, customerID uint, input *QuestionInput, uploads []Upload) (*models.QuestionDetail, error) {
	in, err := input.clean()
	if err != nil {
		return nil, err
	}

	question, err := s.owned(ctx, questionID, customerID)
	if err != nil {
		return nil, err
	}

	category, err := s.category(ctx, in.CategoryName)
	if err != nil {
		return nil, err
	}

	images, err := s.saveFiles(ctx, uploads)
	if err != nil {
		return nil, err
	}

	question.CategoryID = category.ID
	question.Title = in.Title
	question.Content = in.Content
	question.Location = in.Location
	if err := s.questionRepo.Update(ctx, question, images); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}

	log.Printf("✅ Question %d modified", questionID)

	return s.detail(ctx, questionID)
}

// DeleteQuestion deletes a question with its answer, votes, comments and images.
// Only the author may delete a question.
func (s *QuestionService) DeleteQuestion(ctx context.Context, questionID, customerID uint) error {
	if _, err := s.owned(ctx, questionID, customerID); err != nil {
		return err
	}

	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrQuestionNotFound
		}
		return err
	}

	log.Printf("✅ Question %d deleted", questionID)
	return nil
}

// AddComment adds a customer comment under a question
func (s *QuestionService) AddComment(ctx context.Context, questionID, customerID uint, content string) (*models.CommentResponse, error) {
	content = sanitize.Body(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", domain.ErrInvalidInput)
	}

	exists, err := s.questionRepo.Exists(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrQuestionNotFound
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		QuestionID: questionID,
		CustomerID: customerID,
		Content:    content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}

	return &models.CommentResponse{
		ID:         comment.ID,
		CustomerID: customerID,
		Nickname:   customer.Nickname,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}, nil
}

// Categories lists every category
func (s *QuestionService) Categories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// saveFiles uploads every file in order; the first failure aborts with ErrUpstreamStorage
func (s *QuestionService) saveFiles(ctx context.Context, uploads []Upload) ([]models.Image, error) {
	images := make([]models.Image, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.storage.SaveFile(ctx, u.Name, u.Content)
		if err != nil {
			s.metrics.RecordUploadFailure()
			log.Printf("❌ Upload of %q failed after %d stored files: %v", u.Name, len(images), err)
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamStorage, err)
		}
		images = append(images, models.Image{FilePath: url})
	}
	return images, nil
}

func (s *QuestionService) category(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// owned loads a question and checks that customerID wrote it
func (s *QuestionService) owned(ctx context.Context, questionID, customerID uint) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	if question.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	return question, nil
}

func (s *QuestionService) detail(ctx context.Context, questionID uint) (*models.QuestionDetail, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return question.ToDetail(), nil
}
