package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FreeDeliverySetting is the single-row global free-delivery default. Cities
// without their own threshold fall back to this one when enabled.
type FreeDeliverySetting struct {
	ID        int             `gorm:"column:id;primaryKey" json:"-"`
	Enabled   bool            `gorm:"column:enabled;not null;default:false" json:"enabled"`
	Threshold decimal.Decimal `gorm:"column:threshold;type:numeric;not null" json:"threshold"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (FreeDeliverySetting) TableName() string {
	return "free_delivery_settings"
}
