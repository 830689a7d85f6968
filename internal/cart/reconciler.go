package cart

import (
	"github.com/shopspring/decimal"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/catalog"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

// StoreAction tells the caller what mutation the external cart store needs
// after reconciliation. The reconciler itself never touches the store.
type StoreAction string

const (
	// StoreActionNone means the input cart was already empty.
	StoreActionNone StoreAction = "none"
	// StoreActionReplace means the store should be replaced with Lines.
	StoreActionReplace StoreAction = "replace"
	// StoreActionClear means every line was dropped and the store should be
	// emptied.
	StoreActionClear StoreAction = "clear"
)

// Outcome is the result of reconciling a cached cart against the catalog.
type Outcome struct {
	Lines        []domain.ReconciledCartLine
	DroppedCount int
	StoreAction  StoreAction
	// NotifyUnavailable is set when at least one line was dropped; the caller
	// decides how to surface the "items no longer available" message.
	NotifyUnavailable bool
}

// Reconcile rebuilds each cached line against the index, recomputing its
// price and titles. A line whose food, variation, or any selected addon or
// option no longer resolves is dropped entirely. Surviving lines keep their
// input order.
func Reconcile(lines []domain.CartLine, idx *catalog.Index) Outcome {
	if len(lines) == 0 {
		return Outcome{StoreAction: StoreActionNone}
	}

	reconciled := make([]domain.ReconciledCartLine, 0, len(lines))
	dropped := 0

	for _, line := range lines {
		resolved, ok := resolveLine(line, idx)
		if !ok {
			dropped++
			continue
		}
		reconciled = append(reconciled, resolved)
	}

	outcome := Outcome{
		Lines:             reconciled,
		DroppedCount:      dropped,
		StoreAction:       StoreActionReplace,
		NotifyUnavailable: dropped > 0,
	}
	if len(reconciled) == 0 {
		outcome.StoreAction = StoreActionClear
	}

	return outcome
}

func resolveLine(line domain.CartLine, idx *catalog.Index) (domain.ReconciledCartLine, bool) {
	food, ok := idx.Food(line.FoodID)
	if !ok {
		return domain.ReconciledCartLine{}, false
	}

	variation, ok := idx.Variation(line.FoodID, line.VariationID)
	if !ok {
		return domain.ReconciledCartLine{}, false
	}

	price := decimal.NewFromFloat(variation.Price)
	var optionTitles []string

	for _, selection := range line.Addons {
		if _, ok := idx.Addon(selection.AddonID); !ok {
			return domain.ReconciledCartLine{}, false
		}
		for _, optionID := range selection.OptionIDs {
			option, ok := idx.Option(optionID)
			if !ok {
				return domain.ReconciledCartLine{}, false
			}
			price = price.Add(decimal.NewFromFloat(option.Price))
			optionTitles = append(optionTitles, option.Title)
		}
	}

	title := food.Title
	if variation.Title != "" {
		title += "(" + variation.Title + ")"
	}

	out := line
	out.Price = price.Round(2)

	return domain.ReconciledCartLine{
		CartLine:     out,
		Title:        title,
		OptionTitles: optionTitles,
	}, true
}
