package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/ruchulu/storefront-backend/pkg/db/models"
)

// Repository is the order persistence surface. Create runs inside the
// caller's transaction so the order and its items commit atomically.
type Repository interface {
	Create(tx *gorm.DB, order *models.Order) error
	FindByTrackingCode(ctx context.Context, code string) (*models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a GORM-backed order repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

func (r *repository) FindByTrackingCode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tracking_code = ?", code).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
