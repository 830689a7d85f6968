package pricing

import "github.com/shopspring/decimal"

// Breakdown is the full set of derived amounts for one cart, computed in a
// single pass for display.
type Breakdown struct {
	ItemSubtotal       decimal.Decimal `json:"item_subtotal"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	CouponSavings      decimal.Decimal `json:"coupon_savings"`
	DeliveryCharge     decimal.Decimal `json:"delivery_charge"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	TipAmount          decimal.Decimal `json:"tip_amount"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
}

func (c Calculator) Breakdown() Breakdown {
	subtotal := c.ItemSubtotal()
	discounted := c.DiscountedSubtotal()

	delivery := decimal.Zero
	if !c.p.IsPickup {
		delivery = c.p.DeliveryCharge
	}

	return Breakdown{
		ItemSubtotal:       subtotal,
		DiscountedSubtotal: discounted,
		CouponSavings:      clamp(subtotal.Sub(discounted).Round(2)),
		DeliveryCharge:     delivery,
		TaxAmount:          c.TaxAmount(),
		TipAmount:          c.TipAmount(),
		GrandTotal:         c.GrandTotal(),
	}
}
