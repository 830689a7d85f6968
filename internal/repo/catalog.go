package repo

import (
	"context"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

type CatalogRepository interface {
	GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.CatalogSnapshot, error)
	Upsert(ctx context.Context, snapshot *domain.CatalogSnapshot) error
}
