package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/queue"
)

type fakeCatalogRepo struct {
	mu        sync.Mutex
	snapshots map[string]*domain.CatalogSnapshot
}

func newFakeCatalogRepo(snapshots ...*domain.CatalogSnapshot) *fakeCatalogRepo {
	repo := &fakeCatalogRepo{snapshots: make(map[string]*domain.CatalogSnapshot)}
	for _, s := range snapshots {
		repo.snapshots[s.RestaurantID] = s
	}
	return repo
}

func (r *fakeCatalogRepo) GetByRestaurantID(_ context.Context, restaurantID string) (*domain.CatalogSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot, ok := r.snapshots[restaurantID]
	if !ok {
		return nil, errors.New("catalog not found")
	}
	return snapshot, nil
}

func (r *fakeCatalogRepo) Upsert(_ context.Context, snapshot *domain.CatalogSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshot.RestaurantID] = snapshot
	return nil
}

// fakeCartStore round-trips sessions through JSON so tests see the same
// serialization boundary the redis store imposes.
type fakeCartStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
	clears   int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{sessions: make(map[string][]byte)}
}

func (s *fakeCartStore) Get(_ context.Context, userID string) (*domain.CartSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.sessions[userID]
	if !ok {
		return &domain.CartSession{UserID: userID}, nil
	}
	var session domain.CartSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *fakeCartStore) Save(_ context.Context, session *domain.CartSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.sessions[session.UserID] = raw
	return nil
}

func (s *fakeCartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	s.clears++
	return nil
}

type fakeQuoteStore struct {
	mu      sync.Mutex
	charges map[string]decimal.Decimal
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{charges: make(map[string]decimal.Decimal)}
}

func (s *fakeQuoteStore) GetCharge(_ context.Context, userID string) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	charge, ok := s.charges[userID]
	return charge, ok, nil
}

func (s *fakeQuoteStore) SetCharge(_ context.Context, userID string, charge decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges[userID] = charge
	return nil
}

type fakeProfileRepo struct {
	profile *domain.UserProfile
	err     error
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, _ string) (*domain.UserProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.profile, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) GetByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.OrderID == orderID {
			return order, nil
		}
	}
	return nil, errors.New("order not found")
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID string, limit int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, order := range r.orders {
		if order.UserID == userID && len(out) < limit {
			out = append(out, *order)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu     sync.Mutex
	audits []*domain.OrderAudit
	err    error
}

func (r *fakeAuditRepo) Create(_ context.Context, audit *domain.OrderAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.audits = append(r.audits, audit)
	return nil
}

func (r *fakeAuditRepo) GetByOrderID(_ context.Context, orderID string, limit int) ([]domain.OrderAudit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OrderAudit
	for _, audit := range r.audits {
		if audit.OrderID == orderID && len(out) < limit {
			out = append(out, *audit)
		}
	}
	return out, nil
}

// fakeSubmitter optionally blocks inside PlaceOrder until released, so tests
// can hold a submission in flight.
type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []domain.OrderPayload
	order    *domain.Order
	err      error

	entered chan struct{}
	release chan struct{}
}

func (f *fakeSubmitter) PlaceOrder(_ context.Context, payload domain.OrderPayload) (*domain.Order, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	if f.err != nil {
		return nil, f.err
	}
	order := *f.order
	return &order, nil
}

type fakeBroker struct {
	mu        sync.Mutex
	published map[string][][]byte
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][][]byte)}
}

func (b *fakeBroker) Publish(_ context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *fakeBroker) Subscribe(_ context.Context, _ string, _ queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }
