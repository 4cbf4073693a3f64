package handlers

import (
	"time"

	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReservationHandler handles branch visit reservations
type ReservationHandler struct {
	reservations *services.ReservationService
	accounts     *services.AccountService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations *services.ReservationService, accounts *services.AccountService) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		accounts:     accounts,
	}
}

// ReservationRequest represents reservation request body.
// ReservationDate is RFC 3339, e.g. 2026-06-01T10:00:00+09:00.
type ReservationRequest struct {
	BranchName      string `json:"branch_name"`
	BankerName      string `json:"banker_name"`
	ReservationDate string `json:"reservation_date"`
}

// MakeReservation books a branch visit for the current customer
// @Summary Make a reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReservationRequest true "Reservation"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reservations [post]
func (h *ReservationHandler) MakeReservation(c *fiber.Ctx) error {
	customerID, err := currentCustomerID(c, h.accounts)
	if err != nil {
		return fail(c, err, "Failed to resolve customer")
	}

	var req ReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	date, err := time.Parse(time.RFC3339, req.ReservationDate)
	if err != nil {
		return response.BadRequest(c, "reservation_date must be RFC 3339")
	}

	id, err := h.reservations.MakeReservation(c.Context(), customerID, &services.ReservationInput{
		BranchName:      req.BranchName,
		BankerName:      req.BankerName,
		ReservationDate: date,
	})
	if err != nil {
		return fail(c, err, "Failed to make reservation")
	}

	return response.Created(c, "Reservation created successfully", fiber.Map{
		"reservation_id": id,
	})
}
