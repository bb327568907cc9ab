package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one product+variant entry in the cart. Display metadata and price
// are copied from the catalog at add-time and not refreshed afterwards.
type Line struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	Image         string          `json:"image,omitempty"`
	WeightVariant string          `json:"weight"`
	UnitPrice     decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
}

// Cart holds the session's lines. At most one line exists per
// (product_id, weight) pair; Add merges into an existing line.
type Cart struct {
	Lines []Line `json:"lines"`
}

func (c *Cart) find(productID uuid.UUID, weightVariant string) int {
	for i, line := range c.Lines {
		if line.ProductID == productID && line.WeightVariant == weightVariant {
			return i
		}
	}
	return -1
}

// Add merges the given snapshot into the cart: an existing
// (product, variant) line gains quantity 1, otherwise a new line with
// quantity 1 is appended. The Quantity field of the input is ignored.
func (c *Cart) Add(line Line) {
	if i := c.find(line.ProductID, line.WeightVariant); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	line.Quantity = 1
	c.Lines = append(c.Lines, line)
}

// Remove drops the matching line. Removing an absent line is a no-op.
func (c *Cart) Remove(productID uuid.UUID, weightVariant string) {
	if i := c.find(productID, weightVariant); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// UpdateQuantity sets the line's quantity to the given value (replacement,
// not increment). A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(productID uuid.UUID, weightVariant string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID, weightVariant)
		return
	}
	if i := c.find(productID, weightVariant); i >= 0 {
		c.Lines[i].Quantity = quantity
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Subtotal returns the sum of unit price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Count returns the sum of quantities, for the cart badge.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
