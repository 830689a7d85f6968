package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/cart"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/catalog"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/checkout"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/delivery"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/pricing"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/queue"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/repo"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/schedule"
)

// OrderSubmitter is the submission interface boundary. The production
// implementation is the gateway HTTP client.
type OrderSubmitter interface {
	PlaceOrder(ctx context.Context, payload domain.OrderPayload) (*domain.Order, error)
}

type CheckoutService struct {
	catalogRepo repo.CatalogRepository
	cartStore   repo.CartStore
	profileRepo repo.ProfileRepository
	orderRepo   repo.OrderRepository
	auditRepo   repo.OrderAuditRepository
	quoter      *delivery.Quoter
	submitter   OrderSubmitter
	broker      queue.Broker
	cfg         StorefrontConfig
	logger      *zap.SugaredLogger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutService(
	catalogRepo repo.CatalogRepository,
	cartStore repo.CartStore,
	profileRepo repo.ProfileRepository,
	orderRepo repo.OrderRepository,
	auditRepo repo.OrderAuditRepository,
	quoter *delivery.Quoter,
	submitter OrderSubmitter,
	broker queue.Broker,
	cfg StorefrontConfig,
	logger *zap.SugaredLogger,
) *CheckoutService {
	return &CheckoutService{
		catalogRepo: catalogRepo,
		cartStore:   cartStore,
		profileRepo: profileRepo,
		orderRepo:   orderRepo,
		auditRepo:   auditRepo,
		quoter:      quoter,
		submitter:   submitter,
		broker:      broker,
		cfg:         cfg,
		logger:      logger,
		inFlight:    make(map[string]struct{}),
	}
}

// PlaceOrder runs the full submission flow: reconcile, validate eligibility,
// check payment compatibility, build the payload and submit it. A rejection
// is returned as a value, not an error; errors are reserved for store,
// catalog and submission failures. One submission per user may be in flight
// at a time.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, method domain.PaymentMethod) (*domain.Order, *checkout.Result, error) {
	if !s.beginSubmission(userID) {
		return nil, nil, ErrSubmissionInFlight
	}
	defer s.endSubmission(userID)

	session, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var snapshot *domain.CatalogSnapshot
	var outcome cart.Outcome
	if session.RestaurantID != "" {
		snapshot, err = s.catalogRepo.GetByRestaurantID(ctx, session.RestaurantID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		outcome = cart.Reconcile(session.Lines, catalog.NewIndex(snapshot))
	}

	// the user confirmed a cart that no longer exists as shown; never submit
	// fewer items than they approved
	if outcome.NotifyUnavailable {
		s.persistReconciled(ctx, session, outcome)
		result := checkout.Result{
			Code:         checkout.CodeCartChanged,
			Remediation:  checkout.RemediationRefreshCart,
			DroppedCount: outcome.DroppedCount,
		}
		return nil, &result, nil
	}

	charge := s.quoter.Charge(ctx, userID)

	var taxRate, minimumOrder float64
	if snapshot != nil {
		taxRate = snapshot.Tax
		minimumOrder = snapshot.MinimumOrder
	}

	tip := session.Tip
	if tip == nil {
		tip = s.cfg.DefaultTip()
	}

	calc := pricing.NewCalculator(pricing.Params{
		Lines:          outcome.Lines,
		Coupon:         session.Coupon,
		DeliveryCharge: charge,
		IsPickup:       session.IsPickup,
		TaxRate:        taxRate,
		Tip:            tip,
	})

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		profile = nil
	}

	result := checkout.Validate(checkout.ValidationInput{
		Availability:  schedule.Evaluate(snapshot, time.Now()),
		Lines:         outcome.Lines,
		Calc:          calc,
		MinimumOrder:  decimal.NewFromFloat(minimumOrder),
		IsPickup:      session.IsPickup,
		Address:       session.Address,
		PaymentMethod: method,
		Profile:       profile,
	})
	if !result.Eligible {
		return nil, &result, nil
	}

	if !checkout.IsCompatible(method, s.cfg.Currency) {
		return nil, nil, ErrPaymentNotSupported
	}

	// pickup orders carry no address
	var address domain.DeliveryAddress
	if session.Address != nil {
		address = *session.Address
	}

	payload := checkout.BuildPayload(outcome.Lines, checkout.BuildContext{
		RestaurantID:   session.RestaurantID,
		PaymentMethod:  method,
		Coupon:         session.Coupon,
		TipAmount:      calc.TipAmount(),
		TaxAmount:      calc.TaxAmount(),
		DeliveryCharge: charge,
		IsPickup:       session.IsPickup,
		Address:        address,
		Now:            time.Now(),
	})

	order, err := s.submitter.PlaceOrder(ctx, payload)
	if err != nil {
		s.logger.Errorw("order submission failed", "user_id", userID, "error", err)
		return nil, nil, err
	}

	order.UserID = userID
	order.RestaurantID = session.RestaurantID

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// the upstream order exists; losing the local record must not fail
		// the user's submission
		s.logger.Errorw("failed to persist order record", "order_id", order.OrderID, "error", err)
	}

	s.publishPlaced(ctx, order, session.IsPickup)

	if err := s.cartStore.Clear(ctx, userID); err != nil {
		s.logger.Errorw("failed to clear cart after order", "user_id", userID, "error", err)
	}

	s.logger.Infow("order placed",
		"order_id", order.OrderID, "user_id", userID,
		"restaurant_id", session.RestaurantID, "payment_method", string(method))

	return order, nil, nil
}

// persistReconciled writes the surviving lines back so the next cart view
// matches what the user will be asked to confirm again.
func (s *CheckoutService) persistReconciled(ctx context.Context, session *domain.CartSession, outcome cart.Outcome) {
	switch outcome.StoreAction {
	case cart.StoreActionClear:
		if err := s.cartStore.Clear(ctx, session.UserID); err != nil {
			s.logger.Errorw("failed to clear cart after reconciliation", "user_id", session.UserID, "error", err)
		}
	case cart.StoreActionReplace:
		lines := make([]domain.CartLine, 0, len(outcome.Lines))
		for _, reconciled := range outcome.Lines {
			lines = append(lines, reconciled.CartLine)
		}
		session.Lines = lines
		if err := s.cartStore.Save(ctx, session); err != nil {
			s.logger.Errorw("failed to save reconciled cart", "user_id", session.UserID, "error", err)
		}
	}
}

func (s *CheckoutService) publishPlaced(ctx context.Context, order *domain.Order, isPickup bool) {
	event := domain.OrderPlacedEvent{
		EventType:     domain.EventOrderPlaced,
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		RestaurantID:  order.RestaurantID,
		PaymentMethod: order.PaymentMethod,
		OrderAmount:   order.OrderAmount,
		IsPickedUp:    isPickup,
		Timestamp:     time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order event", "order_id", order.OrderID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderEvents, eventBytes); err != nil {
		s.logger.Errorw("failed to publish order event", "order_id", order.OrderID, "error", err)
	}
}

// ProcessOrderEvent writes one audit entry for a consumed order event. It is
// invoked by the order-events worker.
func (s *CheckoutService) ProcessOrderEvent(ctx context.Context, event domain.OrderPlacedEvent) error {
	audit := &domain.OrderAudit{
		OrderID:       event.OrderID,
		EventType:     event.EventType,
		UserID:        event.UserID,
		RestaurantID:  event.RestaurantID,
		PaymentMethod: event.PaymentMethod,
		OrderAmount:   event.OrderAmount,
		Timestamp:     event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create order audit", "order_id", event.OrderID, "error", err)
		return fmt.Errorf("failed to create order audit: %w", err)
	}

	s.logger.Infow("order audit created", "order_id", event.OrderID, "event_type", event.EventType)

	return nil
}

func (s *CheckoutService) beginSubmission(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *CheckoutService) endSubmission(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}
