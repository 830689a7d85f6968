package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

// CartStore keeps cart sessions in Redis, one JSON document per user.
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Get returns the user's cart session, or an empty session when none exists.
func (s *CartStore) Get(ctx context.Context, userID string) (*domain.CartSession, error) {
	raw, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &domain.CartSession{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to read cart session: %w", err)
	}

	var session domain.CartSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode cart session: %w", err)
	}

	return &session, nil
}

func (s *CartStore) Save(ctx context.Context, session *domain.CartSession) error {
	session.UpdatedAt = time.Now()

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode cart session: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(session.UserID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart session: %w", err)
	}

	return nil
}

func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart session: %w", err)
	}
	return nil
}

// QuoteStore keeps the last committed delivery charge per user.
type QuoteStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQuoteStore(client *redis.Client, ttl time.Duration) *QuoteStore {
	return &QuoteStore{client: client, ttl: ttl}
}

func quoteKey(userID string) string {
	return "delivery-quote:" + userID
}

func (s *QuoteStore) GetCharge(ctx context.Context, userID string) (decimal.Decimal, bool, error) {
	raw, err := s.client.Get(ctx, quoteKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to read delivery quote: %w", err)
	}

	charge, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to decode delivery quote: %w", err)
	}

	return charge, true, nil
}

func (s *QuoteStore) SetCharge(ctx context.Context, userID string, charge decimal.Decimal) error {
	if err := s.client.Set(ctx, quoteKey(userID), charge.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save delivery quote: %w", err)
	}
	return nil
}
