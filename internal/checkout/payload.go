package checkout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ruchulu/storefront-backend/internal/cart"
	"github.com/ruchulu/storefront-backend/internal/delivery"
	"github.com/ruchulu/storefront-backend/pkg/db/models"
)

// BuildOrder assembles the order record from a validated form, the session
// cart and the resolved delivery quote. Custom-city orders start in the
// pending status with charge 0 until the back office approves a quote.
func BuildOrder(form Form, c *cart.Cart, quote delivery.Quote) *models.Order {
	subtotal := c.Subtotal()
	charge := quote.Charge
	if quote.CustomCityPending {
		charge = decimal.Zero
	}

	order := &models.Order{
		CustomerName:  strings.TrimSpace(form.Name),
		CustomerEmail: strings.TrimSpace(form.Email),
		CustomerPhone: strings.TrimSpace(form.Phone),

		Address: form.Address().Formatted(),
		City:    form.EffectiveCity(),
		State:   strings.TrimSpace(form.State),
		Pincode: strings.TrimSpace(form.Pincode),

		PaymentMethod:    strings.TrimSpace(form.PaymentMethod),
		PaymentSubMethod: strings.TrimSpace(form.PaymentSubMethod),

		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          subtotal.Add(charge),

		Status: models.OrderStatusPlaced,
	}

	if form.IsCustomCity() {
		name := form.EffectiveCity()
		order.IsCustomCity = true
		order.CustomCityName = &name
		order.Status = models.OrderStatusCustomCityPending
	}

	order.Items = make([]models.OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:     line.ProductID,
			Name:          line.Name,
			Image:         line.Image,
			WeightVariant: line.WeightVariant,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			LineTotal:     line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	return order
}
