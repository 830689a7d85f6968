package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderPlacedEvent struct {
	EventType     string          `json:"event_type"`
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	RestaurantID  string          `json:"restaurant_id"`
	PaymentMethod string          `json:"payment_method"`
	OrderAmount   decimal.Decimal `json:"order_amount"`
	IsPickedUp    bool            `json:"is_picked_up"`
	Timestamp     time.Time       `json:"timestamp"`
}

const (
	EventOrderPlaced = "order.placed"
	EventOrderFailed = "order.failed"
)
