package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

type CatalogRepository struct {
	collection *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		collection: db.Collection("catalogs"),
	}
}

func (r *CatalogRepository) GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.CatalogSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var snapshot domain.CatalogSnapshot
	err := r.collection.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&snapshot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("catalog not found")
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	return &snapshot, nil
}

func (r *CatalogRepository) Upsert(ctx context.Context, snapshot *domain.CatalogSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = now
	}
	snapshot.UpdatedAt = now

	filter := bson.M{"restaurant_id": snapshot.RestaurantID}
	update := bson.M{"$set": snapshot}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert catalog: %w", err)
	}

	return nil
}
