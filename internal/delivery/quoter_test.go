package delivery

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

type memQuoteStore struct {
	mu      sync.Mutex
	charges map[string]decimal.Decimal
	failSet bool
}

func newMemQuoteStore() *memQuoteStore {
	return &memQuoteStore{charges: make(map[string]decimal.Decimal)}
}

func (s *memQuoteStore) GetCharge(_ context.Context, userID string) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	charge, ok := s.charges[userID]
	return charge, ok, nil
}

func (s *memQuoteStore) SetCharge(_ context.Context, userID string, charge decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("store down")
	}
	s.charges[userID] = charge
	return nil
}

func TestQuoterChargeDefaultsToBaseRate(t *testing.T) {
	quoter := NewQuoter(newMemQuoteStore(), 1.5, zap.NewNop().Sugar())

	assert.Equal(t, "1.50", quoter.Charge(context.Background(), "user-1").StringFixed(2))
}

func TestQuoterRefreshCommitsCharge(t *testing.T) {
	store := newMemQuoteStore()
	quoter := NewQuoter(store, 1.5, zap.NewNop().Sugar())

	origin := domain.GeoPoint{Latitude: 43.238949, Longitude: 76.889709}
	dest := domain.GeoPoint{Latitude: 43.354446, Longitude: 77.040508}
	quoter.Refresh(context.Background(), "user-1", origin, dest)

	// 18 km rounds up, charged at 1.50 per km
	assert.Equal(t, "27.00", quoter.Charge(context.Background(), "user-1").StringFixed(2))
}

func TestQuoterStaleRefreshIsDiscarded(t *testing.T) {
	store := newMemQuoteStore()
	quoter := NewQuoter(store, 1.5, zap.NewNop().Sugar())

	origin := domain.GeoPoint{Latitude: 43.238949, Longitude: 76.889709}
	near := domain.GeoPoint{Latitude: 43.240000, Longitude: 76.890000}

	// take a generation for the first refresh, then let a second one start
	// before the first commits
	stale := quoter.begin("user-1")
	quoter.Refresh(context.Background(), "user-1", origin, near)

	assert.False(t, quoter.isCurrent("user-1", stale))

	committed := quoter.Charge(context.Background(), "user-1")
	assert.Equal(t, "1.50", committed.StringFixed(2))
}

func TestQuoterKeepsLastChargeOnStoreFailure(t *testing.T) {
	store := newMemQuoteStore()
	quoter := NewQuoter(store, 1.5, zap.NewNop().Sugar())

	origin := domain.GeoPoint{Latitude: 43.238949, Longitude: 76.889709}
	dest := domain.GeoPoint{Latitude: 43.354446, Longitude: 77.040508}
	quoter.Refresh(context.Background(), "user-1", origin, dest)

	store.failSet = true
	quoter.Refresh(context.Background(), "user-1", origin, origin)

	assert.Equal(t, "27.00", quoter.Charge(context.Background(), "user-1").StringFixed(2))
}
