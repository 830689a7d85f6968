package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/gateway"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/service"
)

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=COD STRIPE PAYPAL"`
}

type RejectionResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req CheckoutRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, result, err := app.checkoutService.PlaceOrder(r.Context(), uid, domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionInFlight):
			app.conflictResponse(w, r, err)
		case errors.Is(err, service.ErrPaymentNotSupported):
			app.unprocessableEntityResponse(w, r, RejectionResponse{Error: err.Error()})
		default:
			var subErr *gateway.SubmissionError
			if errors.As(err, &subErr) {
				if subErr.Kind == gateway.FailureValidation {
					app.unprocessableEntityResponse(w, r, RejectionResponse{
						Error:   subErr.Message,
						Details: subErr.Fields,
					})
					return
				}
				app.badGatewayResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
		}
		return
	}

	if result != nil && !result.Eligible {
		app.unprocessableEntityResponse(w, r, RejectionResponse{
			Error:   string(result.Remediation),
			Details: result,
		})
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			app.badRequestResponse(w, r, errors.New("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	orders, err := app.orderRepo.ListByUserID(r.Context(), uid, limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	order, err := app.orderRepo.GetByOrderID(r.Context(), orderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getOrderAuditHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	audits, err := app.auditRepo.GetByOrderID(r.Context(), orderID, 50)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}
