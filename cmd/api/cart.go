package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/service"
)

func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view, err := app.cartService.View(r.Context(), uid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.cartService.Clear(r.Context(), uid); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type AddCartItemRequest struct {
	RestaurantID        string             `json:"restaurant_id" validate:"required"`
	FoodID              string             `json:"food_id" validate:"required"`
	VariationID         string             `json:"variation_id" validate:"required"`
	Addons              []AddCartItemAddon `json:"addons" validate:"dive"`
	Quantity            int                `json:"quantity" validate:"required,min=1"`
	SpecialInstructions string             `json:"special_instructions" validate:"max=500"`
}

type AddCartItemAddon struct {
	AddonID   string   `json:"addon_id" validate:"required"`
	OptionIDs []string `json:"option_ids"`
}

func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req AddCartItemRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	addons := make([]domain.CartAddonSelection, 0, len(req.Addons))
	for _, a := range req.Addons {
		addons = append(addons, domain.CartAddonSelection{
			AddonID:   a.AddonID,
			OptionIDs: a.OptionIDs,
		})
	}

	input := service.AddItemInput{
		RestaurantID:        req.RestaurantID,
		FoodID:              req.FoodID,
		VariationID:         req.VariationID,
		Addons:              addons,
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
	}

	if err := app.cartService.AddItem(r.Context(), uid, input); err != nil {
		if errors.Is(err, service.ErrItemNotInCatalog) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	view, err := app.cartService.View(r.Context(), uid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func (app *application) adjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	itemKey := chi.URLParam(r, "item_key")
	if itemKey == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req AdjustQuantityRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.cartService.AdjustQuantity(r.Context(), uid, itemKey, req.Delta); err != nil {
		if errors.Is(err, service.ErrLineNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	view, err := app.cartService.View(r.Context(), uid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	itemKey := chi.URLParam(r, "item_key")
	if itemKey == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.cartService.RemoveItem(r.Context(), uid, itemKey); err != nil {
		if errors.Is(err, service.ErrLineNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SetCouponRequest struct {
	Code     string  `json:"code" validate:"required_with=Discount"`
	Discount float64 `json:"discount" validate:"gte=0,lte=100"`
}

// setCouponHandler applies a coupon to the cart, or removes it when the body
// carries an empty code.
func (app *application) setCouponHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req SetCouponRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var coupon *domain.Coupon
	if req.Code != "" {
		coupon = &domain.Coupon{Code: req.Code, Discount: req.Discount}
	}

	if err := app.cartService.SetCoupon(r.Context(), uid, coupon); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	view, err := app.cartService.View(r.Context(), uid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetTipRequest struct {
	Amount     *decimal.Decimal `json:"amount"`
	Percentage *float64         `json:"percentage" validate:"omitempty,gte=0,lte=100"`
}

func (app *application) setTipHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req SetTipRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if req.Amount != nil && req.Percentage != nil {
		app.badRequestResponse(w, r, errors.New("tip is either an amount or a percentage, not both"))
		return
	}

	var tip *domain.TipSelection
	if req.Amount != nil || req.Percentage != nil {
		tip = &domain.TipSelection{Amount: req.Amount, Percentage: req.Percentage}
	}

	if err := app.cartService.SetTip(r.Context(), uid, tip); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	view, err := app.cartService.View(r.Context(), uid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetFulfilmentRequest struct {
	IsPickup *bool `json:"is_pickup" validate:"required"`
}

func (app *application) setFulfilmentHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req SetFulfilmentRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.cartService.SetPickup(r.Context(), uid, *req.IsPickup); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	view, err := app.cartService.View(r.Context(), uid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetAddressRequest struct {
	ID              string  `json:"id" validate:"required"`
	Label           string  `json:"label"`
	DeliveryAddress string  `json:"delivery_address" validate:"required"`
	Details         string  `json:"details"`
	Latitude        float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude       float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

func (app *application) setAddressHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req SetAddressRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	address := domain.DeliveryAddress{
		ID:              req.ID,
		Label:           req.Label,
		DeliveryAddress: req.DeliveryAddress,
		Details:         req.Details,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}

	if err := app.cartService.SetAddress(r.Context(), uid, address); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	view, err := app.cartService.View(r.Context(), uid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}
