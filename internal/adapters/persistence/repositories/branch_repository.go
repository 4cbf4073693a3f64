package repositories

import (
	"context"

	"hana-qna/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// branchRepository implements BranchRepository interface
type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

// Create creates a branch-location mapping
func (r *branchRepository) Create(ctx context.Context, branch *models.BranchLocation) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

// GetByBranchName gets the mapping for a branch
func (r *branchRepository) GetByBranchName(ctx context.Context, branchName string) (*models.BranchLocation, error) {
	var branch models.BranchLocation
	err := r.db.WithContext(ctx).Where("branch_name = ?", branchName).First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
