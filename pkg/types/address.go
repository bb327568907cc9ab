package types

import "strings"

// Address carries the checkout address fields as the customer fills them in.
// Zero values mean "not provided"; Merge treats them as non-overwriting.
type Address struct {
	DoorNo   string `json:"door_no"`
	Building string `json:"building"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// Merge overlays detected values onto the address. A detected field replaces
// the current value only when non-empty; empty detections keep what the
// customer already typed.
func (a Address) Merge(detected Address) Address {
	merged := a
	if strings.TrimSpace(detected.DoorNo) != "" {
		merged.DoorNo = detected.DoorNo
	}
	if strings.TrimSpace(detected.Building) != "" {
		merged.Building = detected.Building
	}
	if strings.TrimSpace(detected.Street) != "" {
		merged.Street = detected.Street
	}
	if strings.TrimSpace(detected.City) != "" {
		merged.City = detected.City
	}
	if strings.TrimSpace(detected.State) != "" {
		merged.State = detected.State
	}
	if strings.TrimSpace(detected.Pincode) != "" {
		merged.Pincode = detected.Pincode
	}
	return merged
}

// Formatted joins the populated fields into the single address line stored on orders.
func (a Address) Formatted() string {
	parts := make([]string, 0, 6)
	for _, part := range []string{a.DoorNo, a.Building, a.Street, a.City, a.State, a.Pincode} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
