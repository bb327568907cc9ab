package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceOption is one purchasable size of a product ("¼ kg", "1 kg", ...).
type PriceOption struct {
	Weight string          `json:"weight"`
	Price  decimal.Decimal `json:"price"`
}

// Product is a catalog item. Display metadata is copied onto cart lines at
// add-time and never re-fetched for an existing line.
type Product struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string        `gorm:"column:name;not null" json:"name"`
	Description string        `gorm:"column:description" json:"description,omitempty"`
	Image       string        `gorm:"column:image" json:"image,omitempty"`
	Category    string        `gorm:"column:category" json:"category,omitempty"`
	Prices      []PriceOption `gorm:"column:prices;type:jsonb;serializer:json;not null" json:"prices"`
	// AvailableCities restricts delivery when non-empty; empty means everywhere.
	AvailableCities []string `gorm:"column:available_cities;type:jsonb;serializer:json" json:"available_cities,omitempty"`
	IsActive        bool     `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// PriceFor returns the price option matching the given weight variant.
func (p Product) PriceFor(weight string) (PriceOption, bool) {
	for _, option := range p.Prices {
		if option.Weight == weight {
			return option, true
		}
	}
	return PriceOption{}, false
}

// DeliverableTo reports whether the product can ship to the given city.
func (p Product) DeliverableTo(city string) bool {
	if len(p.AvailableCities) == 0 {
		return true
	}
	for _, allowed := range p.AvailableCities {
		if equalFoldTrim(allowed, city) {
			return true
		}
	}
	return false
}
