package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/checkout"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/delivery"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/queue"
)

type checkoutFixture struct {
	svc       *CheckoutService
	cartStore *fakeCartStore
	orderRepo *fakeOrderRepo
	auditRepo *fakeAuditRepo
	submitter *fakeSubmitter
	broker    *fakeBroker
}

func verifiedProfile() *domain.UserProfile {
	return &domain.UserProfile{
		UserID:          "user-1",
		Name:            "Test User",
		Phone:           "+15550001111",
		PhoneIsVerified: true,
	}
}

func placedOrder() *domain.Order {
	return &domain.Order{
		OrderID:       "order-123",
		PaymentMethod: "COD",
		OrderAmount:   decimal.RequireFromString("26.40"),
		Status:        "PENDING",
		CreatedAt:     time.Now(),
	}
}

func newCheckoutFixture(t *testing.T, snapshot *domain.CatalogSnapshot, profile *domain.UserProfile, cfg StorefrontConfig) *checkoutFixture {
	t.Helper()

	cartStore := newFakeCartStore()
	orderRepo := &fakeOrderRepo{}
	auditRepo := &fakeAuditRepo{}
	submitter := &fakeSubmitter{order: placedOrder()}
	broker := newFakeBroker()
	quoter := delivery.NewQuoter(newFakeQuoteStore(), cfg.DeliveryRate, zap.NewNop().Sugar())

	svc := NewCheckoutService(
		newFakeCatalogRepo(snapshot),
		cartStore,
		&fakeProfileRepo{profile: profile},
		orderRepo,
		auditRepo,
		quoter,
		submitter,
		broker,
		cfg,
		zap.NewNop().Sugar(),
	)

	return &checkoutFixture{
		svc:       svc,
		cartStore: cartStore,
		orderRepo: orderRepo,
		auditRepo: auditRepo,
		submitter: submitter,
		broker:    broker,
	}
}

func seededSession() *domain.CartSession {
	return &domain.CartSession{
		UserID:       "user-1",
		RestaurantID: "rest-1",
		Lines: []domain.CartLine{
			{Key: "line-1", FoodID: "food-1", VariationID: "var-l", Quantity: 2},
		},
		Address: &domain.DeliveryAddress{
			ID:              "addr-1",
			Label:           "Home",
			DeliveryAddress: "1 Main St",
			Latitude:        43.25,
			Longitude:       76.95,
		},
	}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), testConfig())
	ctx := context.Background()
	require.NoError(t, f.cartStore.Save(ctx, seededSession()))

	order, result, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
	require.NoError(t, err)
	require.Nil(t, result)
	require.NotNil(t, order)

	assert.Equal(t, "order-123", order.OrderID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "rest-1", order.RestaurantID)

	// the submitted payload reflects the reconciled cart
	require.Len(t, f.submitter.payloads, 1)
	payload := f.submitter.payloads[0]
	assert.Equal(t, "rest-1", payload.Restaurant)
	assert.Equal(t, "COD", payload.PaymentMethod)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "food-1", payload.Items[0].Food)
	assert.Equal(t, "1.50", payload.DeliveryCharges.StringFixed(2))
	assert.Equal(t, "Home", payload.Address.Label)

	// local record, audit event and cart cleanup
	require.Len(t, f.orderRepo.orders, 1)
	session, err := f.cartStore.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, session.IsEmpty())

	events := f.broker.published[queue.QueueOrderEvents]
	require.Len(t, events, 1)
	var event domain.OrderPlacedEvent
	require.NoError(t, json.Unmarshal(events[0], &event))
	assert.Equal(t, domain.EventOrderPlaced, event.EventType)
	assert.Equal(t, "order-123", event.OrderID)
}

func TestPlaceOrderRejectsWhenLinesDropped(t *testing.T) {
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), testConfig())
	ctx := context.Background()

	session := seededSession()
	session.Lines = append(session.Lines, domain.CartLine{
		Key: "line-2", FoodID: "food-gone", VariationID: "var-l", Quantity: 1,
	})
	require.NoError(t, f.cartStore.Save(ctx, session))

	order, result, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
	require.NoError(t, err)
	require.Nil(t, order)
	require.NotNil(t, result)

	assert.False(t, result.Eligible)
	assert.Equal(t, checkout.CodeCartChanged, result.Code)
	assert.Equal(t, checkout.RemediationRefreshCart, result.Remediation)
	assert.Equal(t, 1, result.DroppedCount)
	assert.Empty(t, f.submitter.payloads)

	// the surviving lines were written back for the next view
	stored, err := f.cartStore.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, "food-1", stored.Lines[0].FoodID)
}

func TestPlaceOrderAppliesDefaultTip(t *testing.T) {
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), testConfig())
	ctx := context.Background()
	require.NoError(t, f.cartStore.Save(ctx, seededSession()))

	order, result, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
	require.NoError(t, err)
	require.Nil(t, result)
	require.NotNil(t, order)

	// no session tip, so the second suggested percentage (15%) applies:
	// 15% of the 25.50 delivery-inclusive base plus 2.55 tax
	require.Len(t, f.submitter.payloads, 1)
	assert.Equal(t, "4.21", f.submitter.payloads[0].Tipping.StringFixed(2))
}

func TestPlaceOrderKeepsExplicitTip(t *testing.T) {
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), testConfig())
	ctx := context.Background()

	session := seededSession()
	amount := decimal.RequireFromString("2.00")
	session.Tip = &domain.TipSelection{Amount: &amount}
	require.NoError(t, f.cartStore.Save(ctx, session))

	_, _, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
	require.NoError(t, err)

	require.Len(t, f.submitter.payloads, 1)
	assert.Equal(t, "2.00", f.submitter.payloads[0].Tipping.StringFixed(2))
}

func TestPlaceOrderClosedRestaurant(t *testing.T) {
	snapshot := testCatalog()
	snapshot.IsAvailable = false
	f := newCheckoutFixture(t, snapshot, verifiedProfile(), testConfig())
	ctx := context.Background()
	require.NoError(t, f.cartStore.Save(ctx, seededSession()))

	order, result, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
	require.NoError(t, err)
	require.Nil(t, order)
	require.NotNil(t, result)

	assert.False(t, result.Eligible)
	assert.Equal(t, checkout.CodeClosed, result.Code)
	assert.Empty(t, f.submitter.payloads)

	// the cart survives a rejection
	session, err := f.cartStore.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, session.IsEmpty())
}

func TestPlaceOrderBelowMinimum(t *testing.T) {
	snapshot := testCatalog()
	snapshot.MinimumOrder = 100
	f := newCheckoutFixture(t, snapshot, verifiedProfile(), testConfig())
	ctx := context.Background()
	require.NoError(t, f.cartStore.Save(ctx, seededSession()))

	_, result, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, checkout.CodeBelowMinimum, result.Code)
	require.NotNil(t, result.Amounts)
	assert.Equal(t, "100.00", result.Amounts.Minimum.StringFixed(2))
	// 24.00 in items plus the 1.50 base delivery charge
	assert.Equal(t, "25.50", result.Amounts.Current.StringFixed(2))
}

func TestPlaceOrderUnverifiedPhone(t *testing.T) {
	profile := verifiedProfile()
	profile.PhoneIsVerified = false
	f := newCheckoutFixture(t, testCatalog(), profile, testConfig())
	ctx := context.Background()
	require.NoError(t, f.cartStore.Save(ctx, seededSession()))

	_, result, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, checkout.CodePhoneUnverified, result.Code)
}

func TestPlaceOrderIncompatibleCurrency(t *testing.T) {
	cfg := testConfig()
	cfg.Currency = "KZT"
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), cfg)
	ctx := context.Background()
	require.NoError(t, f.cartStore.Save(ctx, seededSession()))

	_, result, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentStripe)

	assert.ErrorIs(t, err, ErrPaymentNotSupported)
	assert.Nil(t, result)
	assert.Empty(t, f.submitter.payloads)
}

func TestPlaceOrderSubmissionFailureKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), testConfig())
	f.submitter.err = errors.New("gateway down")
	ctx := context.Background()
	require.NoError(t, f.cartStore.Save(ctx, seededSession()))

	_, _, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)

	assert.Error(t, err)
	assert.Empty(t, f.orderRepo.orders)
	session, getErr := f.cartStore.Get(ctx, "user-1")
	require.NoError(t, getErr)
	assert.False(t, session.IsEmpty())
}

func TestPlaceOrderRejectsConcurrentSubmission(t *testing.T) {
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), testConfig())
	f.submitter.entered = make(chan struct{})
	f.submitter.release = make(chan struct{})
	ctx := context.Background()
	require.NoError(t, f.cartStore.Save(ctx, seededSession()))

	done := make(chan error, 1)
	go func() {
		_, _, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
		done <- err
	}()

	// wait until the first submission is inside the gateway call
	<-f.submitter.entered

	_, _, err := f.svc.PlaceOrder(ctx, "user-1", domain.PaymentCOD)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(f.submitter.release)
	require.NoError(t, <-done)
}

func TestProcessOrderEvent(t *testing.T) {
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), testConfig())

	event := domain.OrderPlacedEvent{
		EventType:     domain.EventOrderPlaced,
		OrderID:       "order-123",
		UserID:        "user-1",
		RestaurantID:  "rest-1",
		PaymentMethod: "COD",
		OrderAmount:   decimal.RequireFromString("26.40"),
		Timestamp:     time.Now(),
	}

	require.NoError(t, f.svc.ProcessOrderEvent(context.Background(), event))

	require.Len(t, f.auditRepo.audits, 1)
	audit := f.auditRepo.audits[0]
	assert.Equal(t, "order-123", audit.OrderID)
	assert.Equal(t, domain.EventOrderPlaced, audit.EventType)
}

func TestProcessOrderEventAuditFailure(t *testing.T) {
	f := newCheckoutFixture(t, testCatalog(), verifiedProfile(), testConfig())
	f.auditRepo.err = errors.New("mongo down")

	err := f.svc.ProcessOrderEvent(context.Background(), domain.OrderPlacedEvent{OrderID: "order-123"})

	assert.Error(t, err)
}
