package memory

import (
	"context"
	"sort"

	"hana-qna/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type customerRepo struct {
	s *Store
}

func (r *customerRepo) Create(_ context.Context, customer *models.Customer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Email == customer.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	customer.ID = s.nextID("customers")
	s.stamp(&customer.CreatedAt, &customer.UpdatedAt)
	s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *customerRepo) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.customers {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type bankerRepo struct {
	s *Store
}

func (r *bankerRepo) Create(_ context.Context, banker *models.Banker) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bankers {
		if b.Email == banker.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	banker.ID = s.nextID("bankers")
	s.stamp(&banker.CreatedAt, &banker.UpdatedAt)
	s.bankers[banker.ID] = *banker
	return nil
}

func (r *bankerRepo) GetByID(_ context.Context, id uint) (*models.Banker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bankers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *bankerRepo) GetByEmail(_ context.Context, email string) (*models.Banker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bankers {
		if b.Email == email {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ============================================================
// Category, Comment, Branch, Reservation
// ============================================================

type categoryRepo struct {
	s *Store
}

func (r *categoryRepo) Create(_ context.Context, category *models.Category) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Name == category.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	category.ID = s.nextID("categories")
	s.categories[category.ID] = *category
	return nil
}

func (r *categoryRepo) GetByName(_ context.Context, name string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *categoryRepo) List(_ context.Context) ([]*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := make([]*models.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		categories = append(categories, &c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

type commentRepo struct {
	s *Store
}

func (r *commentRepo) Create(_ context.Context, comment *models.Comment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[comment.QuestionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	comment.ID = s.nextID("comments")
	s.stamp(&comment.CreatedAt, nil)

	row := *comment
	row.Customer = models.Customer{}
	s.comments[row.ID] = row
	return nil
}

type branchRepo struct {
	s *Store
}

func (r *branchRepo) Create(_ context.Context, branch *models.BranchLocation) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.branches {
		if b.BranchName == branch.BranchName {
			return gorm.ErrDuplicatedKey
		}
	}
	branch.ID = s.nextID("branch_locations")
	s.branches[branch.ID] = *branch
	return nil
}

func (r *branchRepo) GetByBranchName(_ context.Context, branchName string) (*models.BranchLocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.branches {
		if b.BranchName == branchName {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type reservationRepo struct {
	s *Store
}

func (r *reservationRepo) Create(_ context.Context, reservation *models.Reservation) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation.ID = s.nextID("reservations")
	s.stamp(&reservation.CreatedAt, nil)
	s.reservations[reservation.ID] = *reservation
	return nil
}
