package repo

import (
	"context"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]domain.Order, error)
}

type OrderAuditRepository interface {
	Create(ctx context.Context, audit *domain.OrderAudit) error
	GetByOrderID(ctx context.Context, orderID string, limit int) ([]domain.OrderAudit, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
}
