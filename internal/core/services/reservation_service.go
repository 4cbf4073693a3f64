package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"

	"gorm.io/gorm"
)

// ReservationService records branch visit reservations
type ReservationService struct {
	reservationRepo repositories.ReservationRepository
	customerRepo    repositories.CustomerRepository
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservationRepo repositories.ReservationRepository,
	customerRepo repositories.CustomerRepository,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
	}
}

// ReservationInput represents reservation input
type ReservationInput struct {
	BranchName      string    `json:"branch_name"`
	BankerName      string    `json:"banker_name"`
	ReservationDate time.Time `json:"reservation_date"`
}

// MakeReservation stores a reservation and returns its id
func (s *ReservationService) MakeReservation(ctx context.Context, customerID uint, input *ReservationInput) (uint, error) {
	branch := strings.TrimSpace(input.BranchName)
	if branch == "" || input.ReservationDate.IsZero() {
		return 0, fmt.Errorf("%w: branch and reservation date are required", domain.ErrInvalidInput)
	}

	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrCustomerNotFound
		}
		return 0, err
	}

	reservation := &models.Reservation{
		CustomerID:      customerID,
		BranchName:      branch,
		BankerName:      strings.TrimSpace(input.BankerName),
		ReservationDate: input.ReservationDate,
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return 0, err
	}

	log.Printf("✅ Reservation %d: customer %d at %s on %s", reservation.ID, customerID, branch, input.ReservationDate.Format(time.RFC3339))
	return reservation.ID, nil
}
