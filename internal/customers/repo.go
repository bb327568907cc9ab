package customers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruchulu/storefront-backend/pkg/db/models"
)

// Repository is the saved-customer persistence surface.
type Repository interface {
	// FindByIdentifier looks up a saved record by phone or email.
	FindByIdentifier(ctx context.Context, identifier string) (*models.CustomerDetail, error)
	// Upsert writes the detail inside the caller's transaction, replacing an
	// existing record with the same phone or email.
	Upsert(tx *gorm.DB, detail *models.CustomerDetail) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a GORM-backed customer detail repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIdentifier(ctx context.Context, identifier string) (*models.CustomerDetail, error) {
	var detail models.CustomerDetail
	err := r.db.WithContext(ctx).
		Where("phone = ? OR lower(email) = lower(?)", identifier, identifier).
		Order("updated_at desc").
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *repository) Upsert(tx *gorm.DB, detail *models.CustomerDetail) error {
	var existing models.CustomerDetail
	err := tx.
		Where("phone = ? OR lower(email) = lower(?)", detail.Phone, detail.Email).
		First(&existing).Error
	if err == nil {
		detail.ID = existing.ID
		return tx.Model(&models.CustomerDetail{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"name":     detail.Name,
				"email":    detail.Email,
				"phone":    detail.Phone,
				"door_no":  detail.DoorNo,
				"building": detail.Building,
				"street":   detail.Street,
				"city":     detail.City,
				"state":    detail.State,
				"pincode":  detail.Pincode,
			}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(detail).Error
}
