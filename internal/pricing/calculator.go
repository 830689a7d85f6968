package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Params are the inputs every derived amount is a pure function of.
type Params struct {
	Lines          []domain.ReconciledCartLine
	Coupon         *domain.Coupon
	DeliveryCharge decimal.Decimal
	IsPickup       bool
	// TaxRate is the restaurant's tax percentage.
	TaxRate float64
	Tip     *domain.TipSelection
}

// Calculator derives monetary totals from a reconciled cart. All methods are
// pure and every returned amount is rounded once and clamped non-negative.
type Calculator struct {
	p Params
}

func NewCalculator(p Params) Calculator {
	return Calculator{p: p}
}

// ItemSubtotal is the undiscounted sum of line price times quantity.
func (c Calculator) ItemSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.p.Lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return clamp(total)
}

// DiscountedSubtotal applies the coupon percentage when one is present with a
// positive discount; otherwise it equals ItemSubtotal.
func (c Calculator) DiscountedSubtotal() decimal.Decimal {
	subtotal := c.ItemSubtotal()
	if c.p.Coupon == nil || c.p.Coupon.Discount <= 0 {
		return subtotal
	}
	discount := subtotal.Mul(decimal.NewFromFloat(c.p.Coupon.Discount)).Div(oneHundred)
	return clamp(subtotal.Sub(discount))
}

// PriceWithOptionalDelivery is the shared base used by tax, tip and total.
func (c Calculator) PriceWithOptionalDelivery(includeDelivery, applyDiscount bool) decimal.Decimal {
	base := c.ItemSubtotal()
	if applyDiscount {
		base = c.DiscountedSubtotal()
	}
	if includeDelivery {
		base = base.Add(c.p.DeliveryCharge)
	}
	return clamp(base.Round(2))
}

// TaxAmount computes tax over the discounted, delivery-inclusive base. The
// delivery component is omitted for pickup orders.
func (c Calculator) TaxAmount() decimal.Decimal {
	if c.p.TaxRate == 0 {
		return decimal.Zero
	}
	base := c.PriceWithOptionalDelivery(!c.p.IsPickup, true)
	tax := base.Mul(decimal.NewFromFloat(c.p.TaxRate)).Div(oneHundred)
	return clamp(tax.Round(2))
}

// TipAmount returns an explicit fixed tip verbatim. A percentage selection is
// applied to the discounted, delivery-inclusive, tax-inclusive base.
func (c Calculator) TipAmount() decimal.Decimal {
	tip := c.p.Tip
	if tip == nil {
		return decimal.Zero
	}
	if tip.Amount != nil {
		return *tip.Amount
	}
	if tip.Percentage == nil {
		return decimal.Zero
	}
	base := c.PriceWithOptionalDelivery(!c.p.IsPickup, true).Add(c.TaxAmount())
	amount := base.Mul(decimal.NewFromFloat(*tip.Percentage)).Div(oneHundred)
	return clamp(amount.Round(2))
}

// GrandTotal is the displayed total: undiscounted subtotal plus tax, with no
// delivery or tip component. Tax itself is computed against a discounted,
// delivery-inclusive base, so the two do not add up field-by-field; this is
// the documented current behavior and must not be changed without product
// sign-off.
func (c Calculator) GrandTotal() decimal.Decimal {
	total := c.PriceWithOptionalDelivery(false, false).Add(c.TaxAmount())
	return clamp(total.Round(2))
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
