package models

import "github.com/shopspring/decimal"

// DiscountTier maps a quantity range [MinQty, MaxQty) to a pricing
// adjustment. MaxQty = 0 means the tier is unbounded above. A well formed
// tier table is contiguous and non-overlapping over [1, ∞).
type DiscountTier struct {
	MinQty          int             `json:"minQty"`
	MaxQty          int             `json:"maxQty"` // exclusive; 0 = unbounded
	MarkupPercent   decimal.Decimal `json:"markupPercent"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// Contains reports whether the tier covers the given quantity.
func (t DiscountTier) Contains(qty int) bool {
	if qty < t.MinQty {
		return false
	}
	return t.MaxQty == 0 || qty < t.MaxQty
}

// AdjustmentPercent is the signed tier adjustment: markup minus discount.
func (t DiscountTier) AdjustmentPercent() decimal.Decimal {
	return t.MarkupPercent.Sub(t.DiscountPercent)
}

// RoundingRule names the rounding applied once per quote line.
type RoundingRule string

const (
	RoundHalfUp   RoundingRule = "half_up"
	RoundHalfEven RoundingRule = "half_even"
	RoundDown     RoundingRule = "down"
)

// PricingPolicy is the full pricing configuration for one pricing pass.
// The tier adjustment applies first, then the global markup compounds on
// top; that ordering is part of the pricing contract.
type PricingPolicy struct {
	DiscountTiers       []DiscountTier  `json:"discountTiers"`
	GlobalMarkupPercent decimal.Decimal `json:"globalMarkupPercent"`
	Rounding            RoundingRule    `json:"rounding"`
	RoundingPlaces      int32           `json:"roundingPlaces"`
}

// Places returns the rounding precision, defaulting to 2 decimal places.
func (p PricingPolicy) Places() int32 {
	if p.RoundingPlaces <= 0 {
		return 2
	}
	return p.RoundingPlaces
}

// DefaultDiscountTiers returns the standard quantity-discount table. The
// last bracket is unbounded so every quantity ≥ 1 is covered.
func DefaultDiscountTiers() []DiscountTier {
	pct := func(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
	return []DiscountTier{
		{MinQty: 1, MaxQty: 10, DiscountPercent: pct(0)},
		{MinQty: 10, MaxQty: 25, DiscountPercent: pct(5)},
		{MinQty: 25, MaxQty: 50, DiscountPercent: pct(10)},
		{MinQty: 50, MaxQty: 100, DiscountPercent: pct(15)},
		{MinQty: 100, MaxQty: 250, DiscountPercent: pct(20)},
		{MinQty: 250, MaxQty: 0, DiscountPercent: pct(25)},
	}
}
