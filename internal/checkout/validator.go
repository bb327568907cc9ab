package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ruchulu/storefront-backend/internal/cart"
	"github.com/ruchulu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
)

// Payment method identifiers and their allowed sub-methods.
const (
	PaymentMethodOnline = "online"
	PaymentMethodCard   = "card"
)

var paymentSubMethods = map[string][]string{
	PaymentMethodOnline: {"Paytm", "PhonePe", "Google Pay", "BHIM UPI"},
	PaymentMethodCard:   {"Debit Card", "Credit Card"},
}

// FieldError is one inline validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var fieldMessages = map[string]string{
	"name":               "name is required",
	"email":              "a valid email address is required",
	"phone":              "phone must be exactly 10 digits",
	"door_no":            "door number is required",
	"building":           "building is required",
	"street":             "street is required",
	"city":               "city is required",
	"state":              "state is required",
	"pincode":            "pincode must be exactly 6 digits",
	"payment_method":     "payment method is required",
	"payment_sub_method": "payment option is required",
}

// Validator gates order submission. The enabled-state list comes from
// configuration and bounds where orders can be placed at all.
type Validator struct {
	validate      *validator.Validate
	enabledStates []string
}

// NewValidator builds the checkout validator.
func NewValidator(enabledStates []string) (*Validator, error) {
	if len(enabledStates) == 0 {
		return nil, fmt.Errorf("at least one enabled state required")
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Validator{validate: v, enabledStates: enabledStates}, nil
}

// Validate checks field-level and cross-field rules. A nil return means the
// form may proceed to the availability check.
func (v *Validator) Validate(form Form) []FieldError {
	var errs []FieldError

	if err := v.validate.Struct(form); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fe := range invalid {
				field := jsonFieldName(fe.Field())
				msg, ok := fieldMessages[field]
				if !ok {
					msg = fmt.Sprintf("%s is invalid", field)
				}
				errs = append(errs, FieldError{Field: field, Message: msg})
			}
		} else {
			errs = append(errs, FieldError{Field: "form", Message: "submission could not be validated"})
		}
	}

	if state := strings.TrimSpace(form.State); state != "" && !v.stateEnabled(state) {
		errs = append(errs, FieldError{Field: "state", Message: fmt.Sprintf("delivery is not available in %s", state)})
	}

	if form.IsCustomCity() && strings.TrimSpace(form.CustomCity) == "" {
		errs = append(errs, FieldError{Field: "custom_city", Message: "please enter your city name"})
	}

	if method := strings.TrimSpace(form.PaymentMethod); method != "" {
		allowed, ok := paymentSubMethods[method]
		if !ok {
			errs = append(errs, FieldError{Field: "payment_method", Message: "unknown payment method"})
		} else if sub := strings.TrimSpace(form.PaymentSubMethod); sub != "" && !containsFold(allowed, sub) {
			errs = append(errs, FieldError{
				Field:   "payment_sub_method",
				Message: fmt.Sprintf("payment option must be one of: %s", strings.Join(allowed, ", ")),
			})
		}
	}

	return errs
}

// CheckAvailability enforces per-product city allow-lists against the cart.
// Violations aggregate into a single error naming every offending product.
func (v *Validator) CheckAvailability(lines []cart.Line, products map[string]models.Product, city string) error {
	var unavailable []string
	seen := make(map[string]bool)
	for _, line := range lines {
		product, ok := products[line.ProductID.String()]
		if !ok {
			continue
		}
		if !product.DeliverableTo(city) && !seen[product.Name] {
			seen[product.Name] = true
			unavailable = append(unavailable, product.Name)
		}
	}
	if len(unavailable) == 0 {
		return nil
	}

	sort.Strings(unavailable)
	return pkgerrors.New(
		pkgerrors.CodeAvailability,
		fmt.Sprintf("not deliverable to %s: %s", city, strings.Join(unavailable, ", ")),
	).WithDetails(map[string]any{"products": unavailable, "city": city})
}

func (v *Validator) stateEnabled(state string) bool {
	return containsFold(v.enabledStates, state)
}

func containsFold(haystack []string, needle string) bool {
	for _, value := range haystack {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}

// jsonFieldName maps the struct field name reported by the validator to the
// form's wire name.
func jsonFieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	case "DoorNo":
		return "door_no"
	case "Building":
		return "building"
	case "Street":
		return "street"
	case "City":
		return "city"
	case "State":
		return "state"
	case "Pincode":
		return "pincode"
	case "CustomCity":
		return "custom_city"
	case "PaymentMethod":
		return "payment_method"
	case "PaymentSubMethod":
		return "payment_sub_method"
	default:
		return strings.ToLower(structField)
	}
}
