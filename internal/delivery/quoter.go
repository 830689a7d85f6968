package delivery

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/repo"
)

// Quoter recomputes the delivery charge whenever the catalog or drop-off
// location changes. Refreshes for the same user can overlap; a per-user
// generation counter is taken at request time and checked again before the
// result is committed, so a stale computation is discarded rather than
// clobbering a newer one.
type Quoter struct {
	store     repo.DeliveryQuoteStore
	ratePerKm float64
	logger    *zap.SugaredLogger

	mu          sync.Mutex
	generations map[string]uint64
}

func NewQuoter(store repo.DeliveryQuoteStore, ratePerKm float64, logger *zap.SugaredLogger) *Quoter {
	return &Quoter{
		store:       store,
		ratePerKm:   ratePerKm,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

// Refresh computes and commits the charge between origin and destination.
// If another Refresh for the same user starts before this one commits, this
// result is dropped.
func (q *Quoter) Refresh(ctx context.Context, userID string, origin, dest domain.GeoPoint) {
	generation := q.begin(userID)

	distance := Distance(origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude)
	charge := Charge(distance, q.ratePerKm)

	if !q.isCurrent(userID, generation) {
		return
	}

	if err := q.store.SetCharge(ctx, userID, charge); err != nil {
		// keep the last committed charge on failure
		q.logger.Errorw("failed to commit delivery charge", "user_id", userID, "error", err)
		return
	}

	q.logger.Infow("delivery charge committed", "user_id", userID, "distance_km", distance, "charge", charge)
}

// Charge returns the last committed charge for the user, defaulting to the
// base per-kilometer rate when nothing has been committed yet or the store
// read fails.
func (q *Quoter) Charge(ctx context.Context, userID string) decimal.Decimal {
	base := decimal.NewFromFloat(q.ratePerKm).Round(2)

	charge, ok, err := q.store.GetCharge(ctx, userID)
	if err != nil {
		q.logger.Warnw("failed to read delivery charge, using base rate", "user_id", userID, "error", err)
		return base
	}
	if !ok {
		return base
	}
	return charge
}

func (q *Quoter) begin(userID string) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.generations[userID]++
	return q.generations[userID]
}

func (q *Quoter) isCurrent(userID string, generation uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.generations[userID] == generation
}
