package catalog

import (
	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

// Index flattens a catalog snapshot's category tree and shared addon/option
// tables into id lookups. It is built once per snapshot and never mutated.
type Index struct {
	foods      map[string]domain.Food
	variations map[string]map[string]domain.Variation
	addons     map[string]domain.Addon
	options    map[string]domain.Option
}

// NewIndex builds an index for the given snapshot. A nil snapshot yields a
// usable empty index.
func NewIndex(snapshot *domain.CatalogSnapshot) *Index {
	idx := &Index{
		foods:      make(map[string]domain.Food),
		variations: make(map[string]map[string]domain.Variation),
		addons:     make(map[string]domain.Addon),
		options:    make(map[string]domain.Option),
	}

	if snapshot == nil {
		return idx
	}

	for _, category := range snapshot.Categories {
		for _, food := range category.Foods {
			idx.foods[food.ID] = food

			byID := make(map[string]domain.Variation, len(food.Variations))
			for _, variation := range food.Variations {
				byID[variation.ID] = variation
			}
			idx.variations[food.ID] = byID
		}
	}

	for _, addon := range snapshot.Addons {
		idx.addons[addon.ID] = addon
	}

	for _, option := range snapshot.Options {
		idx.options[option.ID] = option
	}

	return idx
}

func (idx *Index) Food(foodID string) (domain.Food, bool) {
	food, ok := idx.foods[foodID]
	return food, ok
}

// Variation looks up a variation within a specific food.
func (idx *Index) Variation(foodID, variationID string) (domain.Variation, bool) {
	byID, ok := idx.variations[foodID]
	if !ok {
		return domain.Variation{}, false
	}
	variation, ok := byID[variationID]
	return variation, ok
}

func (idx *Index) Addon(addonID string) (domain.Addon, bool) {
	addon, ok := idx.addons[addonID]
	return addon, ok
}

func (idx *Index) Option(optionID string) (domain.Option, bool) {
	option, ok := idx.options[optionID]
	return option, ok
}
