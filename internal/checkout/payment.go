package checkout

import (
	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

// Supported-currency tables for the card processors. Reference data, kept in
// sync with the processors' published lists; COD has no currency constraint.
var stripeCurrencies = currencySet(
	"AED", "AUD", "BGN", "BRL", "CAD", "CHF", "CZK", "DKK", "EUR", "GBP",
	"HKD", "HUF", "IDR", "ILS", "INR", "JPY", "MXN", "MYR", "NOK", "NZD",
	"PHP", "PKR", "PLN", "RON", "SEK", "SGD", "THB", "TRY", "USD", "ZAR",
)

var paypalCurrencies = currencySet(
	"AUD", "BRL", "CAD", "CHF", "CZK", "DKK", "EUR", "GBP", "HKD", "HUF",
	"ILS", "JPY", "MXN", "MYR", "NOK", "NZD", "PHP", "PLN", "SEK", "SGD",
	"THB", "TWD", "USD",
)

// IsCompatible reports whether the payment method can settle in the given
// currency. COD is always compatible.
func IsCompatible(method domain.PaymentMethod, currency string) bool {
	switch method {
	case domain.PaymentStripe:
		_, ok := stripeCurrencies[currency]
		return ok
	case domain.PaymentPaypal:
		_, ok := paypalCurrencies[currency]
		return ok
	default:
		return true
	}
}

func currencySet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}
