package delivery

import (
	"context"

	"gorm.io/gorm"

	"github.com/ruchulu/storefront-backend/pkg/db/models"
)

// Repository defines the persistence surface required by the resolver.
type Repository interface {
	List(ctx context.Context) ([]models.DeliveryLocation, error)
	FindByCityState(ctx context.Context, city, state string) (*models.DeliveryLocation, error)
	FreeDeliverySetting(ctx context.Context) (*models.FreeDeliverySetting, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a GORM-backed delivery repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.DeliveryLocation, error) {
	var locations []models.DeliveryLocation
	err := r.db.WithContext(ctx).
		Order("state asc, city_name asc").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// FindByCityState matches case-insensitively on city name and exactly on
// state: two states may carry same-named cities.
func (r *repository) FindByCityState(ctx context.Context, city, state string) (*models.DeliveryLocation, error) {
	var location models.DeliveryLocation
	err := r.db.WithContext(ctx).
		Where("lower(city_name) = lower(?) AND state = ?", city, state).
		First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) FreeDeliverySetting(ctx context.Context) (*models.FreeDeliverySetting, error) {
	var setting models.FreeDeliverySetting
	err := r.db.WithContext(ctx).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
