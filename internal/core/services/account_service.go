package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"
	"hana-qna/internal/pkg/password"

	"gorm.io/gorm"
)

// Account errors
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrWeakPassword       = errors.New("password must be 8-72 characters")
)

// AccountService verifies credentials and resolves the account behind an identity
type AccountService struct {
	customerRepo repositories.CustomerRepository
	bankerRepo   repositories.BankerRepository
}

// NewAccountService creates a new account service
func NewAccountService(
	customerRepo repositories.CustomerRepository,
	bankerRepo repositories.BankerRepository,
) *AccountService {
	return &AccountService{
		customerRepo: customerRepo,
		bankerRepo:   bankerRepo,
	}
}

// RegisterCustomerInput represents customer sign-up input
type RegisterCustomerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

// RegisterBankerInput represents banker account input
type RegisterBankerInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	BranchName string `json:"branch_name"`
}

// Verify checks email/password against customers first, then bankers.
// Unknown email and wrong password both yield ErrInvalidLogin.
func (s *AccountService) Verify(ctx context.Context, email, pw string) (*domain.Identity, error) {
	email = normalizeEmail(email)

	// 1. Customer
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err == nil {
		if !password.Verify(pw, customer.Password) {
			return nil, domain.ErrInvalidLogin
		}
		return &domain.Identity{
			Subject: customer.Email,
			Roles:   domain.NewRoleSet(domain.RoleCustomer),
			Email:   customer.Email,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. Banker
	banker, err := s.bankerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidLogin
		}
		return nil, err
	}
	if !password.Verify(pw, banker.Password) {
		return nil, domain.ErrInvalidLogin
	}
	return &domain.Identity{
		Subject: banker.Email,
		Roles:   domain.NewRoleSet(domain.RoleBanker),
		Email:   banker.Email,
	}, nil
}

// CustomerBySubject loads the customer a token subject refers to
func (s *AccountService) CustomerBySubject(ctx context.Context, subject string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// BankerBySubject loads the banker a token subject refers to
func (s *AccountService) BankerBySubject(ctx context.Context, subject string) (*models.Banker, error) {
	banker, err := s.bankerRepo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBankerNotFound
		}
		return nil, err
	}
	return banker, nil
}

// RegisterCustomer creates a customer account
func (s *AccountService) RegisterCustomer(ctx context.Context, input *RegisterCustomerInput) (*models.Customer, error) {
	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Nickname) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Email:    email,
		Password: hashed,
		Name:     strings.TrimSpace(input.Name),
		Nickname: strings.TrimSpace(input.Nickname),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	log.Printf("✅ Customer registered: %s", customer.Email)
	return customer, nil
}

// RegisterBanker creates a banker account
func (s *AccountService) RegisterBanker(ctx context.Context, input *RegisterBankerInput) (*models.Banker, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	banker := &models.Banker{
		Email:      email,
		Password:   hashed,
		Name:       strings.TrimSpace(input.Name),
		BranchName: strings.TrimSpace(input.BranchName),
	}
	if err := s.bankerRepo.Create(ctx, banker); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	log.Printf("✅ Banker registered: %s (%s)", banker.Email, banker.BranchName)
	return banker, nil
}

// ensureEmailFree keeps an email unique across both account tables
func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	if _, err := s.customerRepo.GetByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if _, err := s.bankerRepo.GetByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
