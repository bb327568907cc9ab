package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryLocation is an admin-configured deliverable city. Identity is the
// (city_name, state) pair; two states may carry same-named cities.
type DeliveryLocation struct {
	ID       uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CityName string          `gorm:"column:city_name;not null;uniqueIndex:idx_delivery_locations_city_state" json:"name"`
	State    string          `gorm:"column:state;not null;uniqueIndex:idx_delivery_locations_city_state" json:"state"`
	Charge   decimal.Decimal `gorm:"column:charge;type:numeric;not null" json:"charge"`
	// FreeDeliveryThreshold overrides the global setting when present.
	FreeDeliveryThreshold *decimal.Decimal `gorm:"column:free_delivery_threshold;type:numeric" json:"free_delivery_threshold,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (DeliveryLocation) TableName() string {
	return "delivery_locations"
}
