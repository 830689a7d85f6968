package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

// CartStore owns the cached cart session. Get returns an empty session, not
// an error, when the user has no cart.
type CartStore interface {
	Get(ctx context.Context, userID string) (*domain.CartSession, error)
	Save(ctx context.Context, session *domain.CartSession) error
	Clear(ctx context.Context, userID string) error
}

// DeliveryQuoteStore keeps the last committed delivery charge per user.
type DeliveryQuoteStore interface {
	GetCharge(ctx context.Context, userID string) (decimal.Decimal, bool, error)
	SetCharge(ctx context.Context, userID string, charge decimal.Decimal) error
}
