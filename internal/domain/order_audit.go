package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderAudit is one entry in the placed-order audit trail, written by the
// order-events worker.
type OrderAudit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       string             `bson:"order_id" json:"order_id"`
	EventType     string             `bson:"event_type" json:"event_type"`
	UserID        string             `bson:"user_id" json:"user_id"`
	RestaurantID  string             `bson:"restaurant_id" json:"restaurant_id"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	OrderAmount   decimal.Decimal    `bson:"order_amount" json:"order_amount"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}
