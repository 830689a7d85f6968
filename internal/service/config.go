package service

import "github.com/saaaadmalik/food-delivery-multivendor/internal/domain"

// StorefrontConfig is the storefront-wide configuration injected into the
// cart and checkout services: active currency, delivery pricing and the
// suggested tip percentages offered to the user.
type StorefrontConfig struct {
	Currency       string
	CurrencySymbol string
	DeliveryRate   float64
	TipVariations  []float64
}

// DefaultTip is the pre-selected tip, the second suggested percentage. It
// applies whenever the session carries no explicit selection.
func (c StorefrontConfig) DefaultTip() *domain.TipSelection {
	if len(c.TipVariations) < 2 {
		return nil
	}
	pct := c.TipVariations[1]
	return &domain.TipSelection{Percentage: &pct}
}
