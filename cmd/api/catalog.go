package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

var ErrInvalidID = errors.New("invalid ID parameter")

func (app *application) getCatalogHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	snapshot, err := app.catalogRepo.GetByRestaurantID(r.Context(), restaurantID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, snapshot); err != nil {
		app.internalServerError(w, r, err)
	}
}

// upsertCatalogHandler replaces the stored snapshot for a restaurant. The
// catalog is owned upstream; this is the ingestion point.
func (app *application) upsertCatalogHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var snapshot domain.CatalogSnapshot
	if err := readJSON(w, r, &snapshot); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	snapshot.RestaurantID = restaurantID

	if err := app.catalogRepo.Upsert(r.Context(), &snapshot); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, snapshot); err != nil {
		app.internalServerError(w, r, err)
	}
}
