package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through fulfilment.
type OrderStatus string

const (
	OrderStatusPlaced            OrderStatus = "placed"
	OrderStatusConfirmed         OrderStatus = "confirmed"
	OrderStatusOutForDelivery    OrderStatus = "out_for_delivery"
	OrderStatusDelivered         OrderStatus = "delivered"
	OrderStatusCancelled         OrderStatus = "cancelled"
	OrderStatusCustomCityPending OrderStatus = "custom_city_pending"
)

// Order is the assembled checkout record. It is written once at placement and
// only its status (and, for custom-city orders, the delivery charge) changes
// afterwards.
type Order struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TrackingCode string    `gorm:"column:tracking_code;not null;uniqueIndex" json:"tracking_code"`

	CustomerName  string `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerEmail string `gorm:"column:customer_email;not null" json:"customer_email"`
	CustomerPhone string `gorm:"column:customer_phone;not null" json:"customer_phone"`

	// Address is the full formatted line; the individual fields are kept for
	// delivery-zone reporting.
	Address string `gorm:"column:address;not null" json:"address"`
	City    string `gorm:"column:city;not null" json:"city"`
	State   string `gorm:"column:state;not null" json:"state"`
	Pincode string `gorm:"column:pincode;not null" json:"pincode"`

	PaymentMethod    string `gorm:"column:payment_method;not null" json:"payment_method"`
	PaymentSubMethod string `gorm:"column:payment_sub_method;not null" json:"payment_sub_method"`

	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric;not null" json:"subtotal"`
	DeliveryCharge decimal.Decimal `gorm:"column:delivery_charge;type:numeric;not null" json:"delivery_charge"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric;not null" json:"total"`

	// Custom-city orders carry charge 0 until the back office approves a quote.
	IsCustomCity   bool    `gorm:"column:is_custom_city;not null;default:false" json:"is_custom_city"`
	CustomCityName *string `gorm:"column:custom_city_name" json:"custom_city_name,omitempty"`

	Status OrderStatus `gorm:"column:status;not null;default:'placed'" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots one cart line at placement time.
type OrderItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID       uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"-"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Name          string          `gorm:"column:name;not null" json:"name"`
	Image         string          `gorm:"column:image" json:"image,omitempty"`
	WeightVariant string          `gorm:"column:weight_variant;not null" json:"weight"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:numeric;not null" json:"price"`
	Quantity      int             `gorm:"column:quantity;not null" json:"quantity"`
	LineTotal     decimal.Decimal `gorm:"column:line_total;type:numeric;not null" json:"line_total"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
