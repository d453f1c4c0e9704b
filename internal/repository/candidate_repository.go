package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/models"
	"gorm.io/gorm"
)

// CandidateRepository persists candidates through gorm.
type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var rows []models.Candidate
	err := r.db.WithContext(ctx).
		Select("id").
		Where("email = ?", email).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return false, classify(err)
	}
	return len(rows) > 0, nil
}

// Create inserts c and fills the store-assigned id and created_at.
func (r *CandidateRepository) Create(ctx context.Context, c *models.Candidate) error {
	return classify(r.db.WithContext(ctx).Create(c).Error)
}

// List returns one page of candidates, newest first, and the total row count.
func (r *CandidateRepository) List(ctx context.Context, limit, offset int) ([]models.Candidate, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Candidate{}).Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	candidates := make([]models.Candidate, 0, limit)
	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&candidates).Error
	if err != nil {
		return nil, 0, classify(err)
	}
	return candidates, total, nil
}
