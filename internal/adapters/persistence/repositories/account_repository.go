package repositories

import (
	"context"

	"hana-qna/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByEmail gets a customer by email
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// bankerRepository implements BankerRepository interface
type bankerRepository struct {
	db *gorm.DB
}

// NewBankerRepository creates a new banker repository
func NewBankerRepository(db *gorm.DB) BankerRepository {
	return &bankerRepository{db: db}
}

// Create creates a new banker
func (r *bankerRepository) Create(ctx context.Context, banker *models.Banker) error {
	return r.db.WithContext(ctx).Create(banker).Error
}

// GetByID gets a banker by ID
func (r *bankerRepository) GetByID(ctx context.Context, id uint) (*models.Banker, error) {
	var banker models.Banker
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&banker).Error
	if err != nil {
		return nil, err
	}
	return &banker, nil
}

// GetByEmail gets a banker by email
func (r *bankerRepository) GetByEmail(ctx context.Context, email string) (*models.Banker, error) {
	var banker models.Banker
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&banker).Error
	if err != nil {
		return nil, err
	}
	return &banker, nil
}

// reservationRepository implements ReservationRepository interface
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Create creates a new reservation
func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}
