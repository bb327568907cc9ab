package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerDetail is the saved contact/address record keyed by phone or email,
// used to prefill the checkout form for returning customers.
type CustomerDetail struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"column:name;not null" json:"name"`
	Email string    `gorm:"column:email;index" json:"email"`
	Phone string    `gorm:"column:phone;index" json:"phone"`

	DoorNo   string `gorm:"column:door_no" json:"door_no"`
	Building string `gorm:"column:building" json:"building"`
	Street   string `gorm:"column:street" json:"street"`
	City     string `gorm:"column:city" json:"city"`
	State    string `gorm:"column:state" json:"state"`
	Pincode  string `gorm:"column:pincode" json:"pincode"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (CustomerDetail) TableName() string {
	return "customer_details"
}
