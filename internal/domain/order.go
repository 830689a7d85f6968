package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentStripe PaymentMethod = "STRIPE"
	PaymentPaypal PaymentMethod = "PAYPAL"
)

// OrderPayload is the wire shape accepted by the order submission interface.
// The json field names are the contract and must not change.
type OrderPayload struct {
	Restaurant      string           `json:"restaurant"`
	Items           []OrderItemInput `json:"orderInput"`
	PaymentMethod   string           `json:"paymentMethod"`
	CouponCode      *string          `json:"couponCode"`
	Tipping         decimal.Decimal  `json:"tipping"`
	TaxationAmount  decimal.Decimal  `json:"taxationAmount"`
	OrderDate       time.Time        `json:"orderDate"`
	IsPickedUp      bool             `json:"isPickedUp"`
	DeliveryCharges decimal.Decimal  `json:"deliveryCharges"`
	Address         OrderAddress     `json:"address"`
}

type OrderItemInput struct {
	Food                string            `json:"food"`
	Variation           string            `json:"variation"`
	Quantity            int               `json:"quantity"`
	Addons              []OrderAddonInput `json:"addons"`
	SpecialInstructions string            `json:"specialInstructions"`
}

type OrderAddonInput struct {
	ID      string   `json:"_id"`
	Options []string `json:"options"`
}

// OrderAddress carries coordinates as decimal strings, as the submission
// interface requires.
type OrderAddress struct {
	Label           string `json:"label"`
	DeliveryAddress string `json:"deliveryAddress"`
	Details         string `json:"details"`
	Longitude       string `json:"longitude"`
	Latitude        string `json:"latitude"`
}

// Order is the record returned by the submission interface for a placed
// order, persisted for downstream confirmation flows.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       string             `bson:"order_id" json:"order_id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	RestaurantID  string             `bson:"restaurant_id" json:"restaurant_id"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	OrderAmount   decimal.Decimal    `bson:"order_amount" json:"order_amount"`
	Payload       OrderPayload       `bson:"payload" json:"payload"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
