package pricing

import (
	"github.com/shopspring/decimal"

	"stitchquote/models"
)

// applyRounding applies the policy's rounding rule at the given precision.
// Callers invoke it exactly once per line total; intermediate terms are
// never rounded, which keeps rounding drift out of the aggregates.
func applyRounding(d decimal.Decimal, rule models.RoundingRule, places int32) decimal.Decimal {
	switch rule {
	case models.RoundHalfEven:
		return d.RoundBank(places)
	case models.RoundDown:
		return d.RoundDown(places)
	default:
		// Half away from zero, which is half-up for the non-negative
		// amounts produced here.
		return d.Round(places)
	}
}
