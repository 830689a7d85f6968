package checkout

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

// BuildContext carries the non-cart inputs for payload construction.
type BuildContext struct {
	RestaurantID   string
	PaymentMethod  domain.PaymentMethod
	Coupon         *domain.Coupon
	TipAmount      decimal.Decimal
	TaxAmount      decimal.Decimal
	DeliveryCharge decimal.Decimal
	IsPickup       bool
	Address        domain.DeliveryAddress
	Now            time.Time
}

// BuildPayload maps a reconciled cart into the submission wire shape. Pickup
// orders always carry a zero delivery charge.
func BuildPayload(lines []domain.ReconciledCartLine, ctx BuildContext) domain.OrderPayload {
	items := make([]domain.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		addons := make([]domain.OrderAddonInput, 0, len(line.Addons))
		for _, selection := range line.Addons {
			addons = append(addons, domain.OrderAddonInput{
				ID:      selection.AddonID,
				Options: selection.OptionIDs,
			})
		}
		items = append(items, domain.OrderItemInput{
			Food:                line.FoodID,
			Variation:           line.VariationID,
			Quantity:            line.Quantity,
			Addons:              addons,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	var couponCode *string
	if ctx.Coupon != nil {
		code := ctx.Coupon.Code
		couponCode = &code
	}

	deliveryCharge := ctx.DeliveryCharge
	if ctx.IsPickup {
		deliveryCharge = decimal.Zero
	}

	return domain.OrderPayload{
		Restaurant:      ctx.RestaurantID,
		Items:           items,
		PaymentMethod:   string(ctx.PaymentMethod),
		CouponCode:      couponCode,
		Tipping:         ctx.TipAmount,
		TaxationAmount:  ctx.TaxAmount,
		OrderDate:       ctx.Now,
		IsPickedUp:      ctx.IsPickup,
		DeliveryCharges: deliveryCharge,
		Address: domain.OrderAddress{
			Label:           ctx.Address.Label,
			DeliveryAddress: ctx.Address.DeliveryAddress,
			Details:         ctx.Address.Details,
			Longitude:       strconv.FormatFloat(ctx.Address.Longitude, 'f', -1, 64),
			Latitude:        strconv.FormatFloat(ctx.Address.Latitude, 'f', -1, 64),
		},
	}
}
