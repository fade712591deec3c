package repository

import (
	"context"

	"github.com/gollllden/Done/internal/models"
	"gorm.io/gorm"
)

type StatusCheckRepository interface {
	Create(ctx context.Context, check *models.StatusCheck) error
	FindRecent(ctx context.Context, limit int) ([]models.StatusCheck, error)
}

type statusCheckRepository struct {
	db *gorm.DB
}

func NewStatusCheckRepository(db *gorm.DB) StatusCheckRepository {
	return &statusCheckRepository{db: db}
}

func (r *statusCheckRepository) Create(ctx context.Context, check *models.StatusCheck) error {
	return r.db.WithContext(ctx).Create(check).Error
}

func (r *statusCheckRepository) FindRecent(ctx context.Context, limit int) ([]models.StatusCheck, error) {
	var checks []models.StatusCheck
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Limit(limit).Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}
