package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one locally cached cart entry. Its Price is derived data and is
// never trusted as stored; reconciliation recomputes it from the catalog on
// every read.
type CartLine struct {
	Key                 string               `bson:"key" json:"key"`
	FoodID              string               `bson:"food_id" json:"food_id"`
	VariationID         string               `bson:"variation_id" json:"variation_id"`
	Addons              []CartAddonSelection `bson:"addons" json:"addons"`
	Quantity            int                  `bson:"quantity" json:"quantity"`
	SpecialInstructions string               `bson:"special_instructions" json:"special_instructions"`
	Price               decimal.Decimal      `bson:"price" json:"price"`
}

// CartAddonSelection maps a selected addon group to the option ids chosen
// within it.
type CartAddonSelection struct {
	AddonID   string   `bson:"addon_id" json:"addon_id"`
	OptionIDs []string `bson:"option_ids" json:"option_ids"`
}

// ReconciledCartLine is a CartLine whose food, variation and options were all
// resolved against the current catalog. Price on the embedded line equals
// variation price plus the sum of selected option prices, rounded to two
// decimals. It is a transient view and is never persisted as such.
type ReconciledCartLine struct {
	CartLine
	Title        string   `json:"title"`
	OptionTitles []string `json:"option_titles"`
}

type Coupon struct {
	Code     string  `bson:"code" json:"code"`
	Discount float64 `bson:"discount" json:"discount"`
}

// TipSelection is either an explicit fixed amount, a percentage chosen from
// the suggested variations, or neither.
type TipSelection struct {
	Amount     *decimal.Decimal `bson:"amount,omitempty" json:"amount,omitempty"`
	Percentage *float64         `bson:"percentage,omitempty" json:"percentage,omitempty"`
}

// CartSession is the per-user cart state owned by the cart store. The core
// reads it and requests replacements; it never mutates the store directly.
type CartSession struct {
	UserID       string           `bson:"user_id" json:"user_id"`
	RestaurantID string           `bson:"restaurant_id" json:"restaurant_id"`
	Lines        []CartLine       `bson:"lines" json:"lines"`
	Coupon       *Coupon          `bson:"coupon,omitempty" json:"coupon,omitempty"`
	Tip          *TipSelection    `bson:"tip,omitempty" json:"tip,omitempty"`
	IsPickup     bool             `bson:"is_pickup" json:"is_pickup"`
	Address      *DeliveryAddress `bson:"address,omitempty" json:"address,omitempty"`
	UpdatedAt    time.Time        `bson:"updated_at" json:"updated_at"`
}

func (s *CartSession) IsEmpty() bool {
	return s == nil || len(s.Lines) == 0
}

// DeliveryAddress is the drop-off location chosen for the session.
type DeliveryAddress struct {
	ID              string  `bson:"id" json:"id"`
	Label           string  `bson:"label" json:"label"`
	DeliveryAddress string  `bson:"delivery_address" json:"delivery_address"`
	Details         string  `bson:"details" json:"details"`
	Latitude        float64 `bson:"latitude" json:"latitude"`
	Longitude       float64 `bson:"longitude" json:"longitude"`
}

// UserProfile carries the contact fields checked before an order may be
// submitted.
type UserProfile struct {
	UserID          string            `bson:"user_id" json:"user_id"`
	Name            string            `bson:"name" json:"name"`
	Email           string            `bson:"email" json:"email"`
	Phone           string            `bson:"phone" json:"phone"`
	PhoneIsVerified bool              `bson:"phone_is_verified" json:"phone_is_verified"`
	Addresses       []DeliveryAddress `bson:"addresses" json:"addresses"`
}
