package pricing

import (
	"fmt"
	"sort"

	"stitchquote/errs"
	"stitchquote/models"
)

// ResolveTier selects the discount/markup tier covering the given quantity.
// It is a pure function: deterministic for identical inputs, no side effects.
//
// A quantity below 1 is an input error and rejects the call. A quantity no
// tier covers is a configuration error (a gap in the tier table). When a
// misconfigured table has overlapping tiers matching the same quantity, the
// tier with the lowest MinQty wins deterministically and the overlap is
// reported as a data-integrity warning.
func ResolveTier(quantity int, tiers []models.DiscountTier) (models.DiscountTier, []models.Warning, error) {
	if quantity < 1 {
		return models.DiscountTier{}, nil, errs.Newf(errs.TypeInput, "quantity must be at least 1, got %d", quantity)
	}

	var matches []models.DiscountTier
	for _, t := range tiers {
		if t.Contains(quantity) {
			matches = append(matches, t)
		}
	}

	if len(matches) == 0 {
		return models.DiscountTier{}, nil, errs.Newf(errs.TypeConfig, "no discount tier covers quantity %d", quantity)
	}

	if len(matches) == 1 {
		return matches[0], nil, nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MinQty != matches[j].MinQty {
			return matches[i].MinQty < matches[j].MinQty
		}
		return matches[i].MaxQty < matches[j].MaxQty
	})

	warn := models.Warning{
		Code: models.WarnTierOverlap,
		Message: fmt.Sprintf("%d discount tiers overlap at quantity %d; using tier with minQty=%d",
			len(matches), quantity, matches[0].MinQty),
	}
	return matches[0], []models.Warning{warn}, nil
}
