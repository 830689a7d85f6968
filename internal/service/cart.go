package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/cart"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/catalog"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/delivery"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/pricing"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/repo"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/schedule"
)

// CartView is the reconciled cart plus everything the client needs to render
// it: derived totals, availability, and the reconciliation signals.
type CartView struct {
	RestaurantID      string                      `json:"restaurant_id"`
	Availability      schedule.State              `json:"availability"`
	Lines             []domain.ReconciledCartLine `json:"lines"`
	DroppedCount      int                         `json:"dropped_count"`
	NotifyUnavailable bool                        `json:"notify_unavailable"`
	IsPickup          bool                        `json:"is_pickup"`
	MinimumOrder      decimal.Decimal             `json:"minimum_order"`
	Breakdown         pricing.Breakdown           `json:"breakdown"`
	Currency          string                      `json:"currency"`
	CurrencySymbol    string                      `json:"currency_symbol"`
	SuggestedTips     []float64                   `json:"suggested_tips"`
}

type CartService struct {
	catalogRepo repo.CatalogRepository
	cartStore   repo.CartStore
	quoter      *delivery.Quoter
	cfg         StorefrontConfig
	logger      *zap.SugaredLogger
}

func NewCartService(
	catalogRepo repo.CatalogRepository,
	cartStore repo.CartStore,
	quoter *delivery.Quoter,
	cfg StorefrontConfig,
	logger *zap.SugaredLogger,
) *CartService {
	return &CartService{
		catalogRepo: catalogRepo,
		cartStore:   cartStore,
		quoter:      quoter,
		cfg:         cfg,
		logger:      logger,
	}
}

// View rebuilds the user's cached cart against the current catalog and
// returns the reconciled lines with derived totals. Reconciliation results
// are written back to the cart store so the cached prices stay fresh.
func (s *CartService) View(ctx context.Context, userID string) (*CartView, error) {
	session, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	view := &CartView{
		RestaurantID:   session.RestaurantID,
		Availability:   schedule.Closed,
		IsPickup:       session.IsPickup,
		Currency:       s.cfg.Currency,
		CurrencySymbol: s.cfg.CurrencySymbol,
		SuggestedTips:  s.cfg.TipVariations,
	}

	if session.RestaurantID == "" {
		return view, nil
	}

	snapshot, err := s.catalogRepo.GetByRestaurantID(ctx, session.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	outcome := cart.Reconcile(session.Lines, catalog.NewIndex(snapshot))
	if err := s.applyOutcome(ctx, session, outcome); err != nil {
		return nil, err
	}

	if session.Address != nil && !session.IsPickup {
		s.refreshQuote(userID, snapshot.Location, *session.Address)
	}

	tip := session.Tip
	if tip == nil {
		tip = s.cfg.DefaultTip()
	}

	charge := s.quoter.Charge(ctx, userID)
	calc := pricing.NewCalculator(pricing.Params{
		Lines:          outcome.Lines,
		Coupon:         session.Coupon,
		DeliveryCharge: charge,
		IsPickup:       session.IsPickup,
		TaxRate:        snapshot.Tax,
		Tip:            tip,
	})

	view.Availability = schedule.Evaluate(snapshot, time.Now())
	view.Lines = outcome.Lines
	view.DroppedCount = outcome.DroppedCount
	view.NotifyUnavailable = outcome.NotifyUnavailable
	view.MinimumOrder = decimal.NewFromFloat(snapshot.MinimumOrder)
	view.Breakdown = calc.Breakdown()

	return view, nil
}

// applyOutcome performs the store mutation the reconciler requested.
func (s *CartService) applyOutcome(ctx context.Context, session *domain.CartSession, outcome cart.Outcome) error {
	switch outcome.StoreAction {
	case cart.StoreActionClear:
		if err := s.cartStore.Clear(ctx, session.UserID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		session.Lines = nil
	case cart.StoreActionReplace:
		lines := make([]domain.CartLine, 0, len(outcome.Lines))
		for _, reconciled := range outcome.Lines {
			lines = append(lines, reconciled.CartLine)
		}
		session.Lines = lines
		if err := s.cartStore.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save cart: %w", err)
		}
	}

	if outcome.DroppedCount > 0 {
		s.logger.Infow("cart lines dropped during reconciliation",
			"user_id", session.UserID, "dropped", outcome.DroppedCount)
	}

	return nil
}

// AddItemInput identifies the catalog entry being added. Lines with the same
// food, variation and addon selections merge into one.
type AddItemInput struct {
	RestaurantID        string
	FoodID              string
	VariationID         string
	Addons              []domain.CartAddonSelection
	Quantity            int
	SpecialInstructions string
}

func (s *CartService) AddItem(ctx context.Context, userID string, input AddItemInput) error {
	session, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	// a cart belongs to one restaurant; switching restaurants starts over
	if session.RestaurantID != "" && session.RestaurantID != input.RestaurantID {
		session = &domain.CartSession{UserID: userID}
	}
	session.RestaurantID = input.RestaurantID

	snapshot, err := s.catalogRepo.GetByRestaurantID(ctx, input.RestaurantID)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	idx := catalog.NewIndex(snapshot)
	if _, ok := idx.Food(input.FoodID); !ok {
		return ErrItemNotInCatalog
	}
	if _, ok := idx.Variation(input.FoodID, input.VariationID); !ok {
		return ErrItemNotInCatalog
	}
	for _, selection := range input.Addons {
		if _, ok := idx.Addon(selection.AddonID); !ok {
			return ErrItemNotInCatalog
		}
		for _, optionID := range selection.OptionIDs {
			if _, ok := idx.Option(optionID); !ok {
				return ErrItemNotInCatalog
			}
		}
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if merged := mergeLine(session.Lines, input, quantity); merged {
		return s.save(ctx, session)
	}

	session.Lines = append(session.Lines, domain.CartLine{
		Key:                 uuid.NewString(),
		FoodID:              input.FoodID,
		VariationID:         input.VariationID,
		Addons:              input.Addons,
		Quantity:            quantity,
		SpecialInstructions: input.SpecialInstructions,
	})

	return s.save(ctx, session)
}

func mergeLine(lines []domain.CartLine, input AddItemInput, quantity int) bool {
	for i := range lines {
		if sameIdentity(lines[i], input) {
			lines[i].Quantity += quantity
			return true
		}
	}
	return false
}

func sameIdentity(line domain.CartLine, input AddItemInput) bool {
	if line.FoodID != input.FoodID || line.VariationID != input.VariationID {
		return false
	}
	if len(line.Addons) != len(input.Addons) {
		return false
	}
	for i, selection := range line.Addons {
		other := input.Addons[i]
		if selection.AddonID != other.AddonID || len(selection.OptionIDs) != len(other.OptionIDs) {
			return false
		}
		for j, optionID := range selection.OptionIDs {
			if optionID != other.OptionIDs[j] {
				return false
			}
		}
	}
	return line.SpecialInstructions == input.SpecialInstructions
}

// AdjustQuantity changes a line's quantity by delta, removing the line when
// it reaches zero.
func (s *CartService) AdjustQuantity(ctx context.Context, userID, key string, delta int) error {
	session, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	for i := range session.Lines {
		if session.Lines[i].Key != key {
			continue
		}
		session.Lines[i].Quantity += delta
		if session.Lines[i].Quantity <= 0 {
			session.Lines = append(session.Lines[:i], session.Lines[i+1:]...)
		}
		return s.save(ctx, session)
	}

	return ErrLineNotFound
}

func (s *CartService) RemoveItem(ctx context.Context, userID, key string) error {
	session, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	for i := range session.Lines {
		if session.Lines[i].Key == key {
			session.Lines = append(session.Lines[:i], session.Lines[i+1:]...)
			return s.save(ctx, session)
		}
	}

	return ErrLineNotFound
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.cartStore.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// SetCoupon attaches or removes (nil) the session coupon.
func (s *CartService) SetCoupon(ctx context.Context, userID string, coupon *domain.Coupon) error {
	return s.update(ctx, userID, func(session *domain.CartSession) {
		session.Coupon = coupon
	})
}

// SetTip attaches or removes (nil) the tip selection.
func (s *CartService) SetTip(ctx context.Context, userID string, tip *domain.TipSelection) error {
	return s.update(ctx, userID, func(session *domain.CartSession) {
		session.Tip = tip
	})
}

func (s *CartService) SetPickup(ctx context.Context, userID string, isPickup bool) error {
	return s.update(ctx, userID, func(session *domain.CartSession) {
		session.IsPickup = isPickup
	})
}

// SetAddress records the drop-off location and kicks off a delivery-charge
// refresh against the restaurant's coordinates.
func (s *CartService) SetAddress(ctx context.Context, userID string, address domain.DeliveryAddress) error {
	session, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	session.Address = &address
	if err := s.save(ctx, session); err != nil {
		return err
	}

	if session.RestaurantID != "" {
		snapshot, err := s.catalogRepo.GetByRestaurantID(ctx, session.RestaurantID)
		if err != nil {
			// charge falls back to the last committed value
			s.logger.Warnw("failed to load catalog for delivery quote", "user_id", userID, "error", err)
			return nil
		}
		s.refreshQuote(userID, snapshot.Location, address)
	}

	return nil
}

// refreshQuote recomputes the delivery charge off the request path. The
// quoter's generation counter discards this result if the inputs change
// again before it commits.
func (s *CartService) refreshQuote(userID string, origin domain.GeoPoint, address domain.DeliveryAddress) {
	dest := domain.GeoPoint{Latitude: address.Latitude, Longitude: address.Longitude}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.quoter.Refresh(ctx, userID, origin, dest)
	}()
}

func (s *CartService) save(ctx context.Context, session *domain.CartSession) error {
	if err := s.cartStore.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *CartService) update(ctx context.Context, userID string, mutate func(*domain.CartSession)) error {
	session, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	mutate(session)
	return s.save(ctx, session)
}
