package checkout

import (
	"strings"

	"github.com/ruchulu/storefront-backend/internal/delivery"
	"github.com/ruchulu/storefront-backend/pkg/types"
)

// Form is the checkout submission as the customer filled it in. Shape rules
// live in the binding tags; cross-field rules (enabled states, payment
// sub-methods, custom city) are checked by the Validator.
type Form struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,len=10,number"`

	DoorNo   string `json:"door_no" validate:"required"`
	Building string `json:"building" validate:"required"`
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Pincode  string `json:"pincode" validate:"required,len=6,number"`

	// CustomCity is required only when City is the "Others" sentinel.
	CustomCity string `json:"custom_city,omitempty"`

	PaymentMethod    string `json:"payment_method" validate:"required"`
	PaymentSubMethod string `json:"payment_sub_method" validate:"required"`
}

// IsCustomCity reports whether the customer picked the out-of-list sentinel.
func (f Form) IsCustomCity() bool {
	return strings.EqualFold(strings.TrimSpace(f.City), delivery.CustomCitySentinel)
}

// EffectiveCity is the city the order ships to: the free-text custom city for
// sentinel selections, the picked city otherwise.
func (f Form) EffectiveCity() string {
	if f.IsCustomCity() {
		return strings.TrimSpace(f.CustomCity)
	}
	return strings.TrimSpace(f.City)
}

// Address assembles the form's address fields. Custom-city orders carry the
// typed city name in the address line.
func (f Form) Address() types.Address {
	return types.Address{
		DoorNo:   f.DoorNo,
		Building: f.Building,
		Street:   f.Street,
		City:     f.EffectiveCity(),
		State:    f.State,
		Pincode:  f.Pincode,
	}
}
