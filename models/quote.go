package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote status values
const (
	QuoteStatusDraft = "draft"
	QuoteStatusFinal = "final"
)

// Warning codes attached to line breakdowns
const (
	WarnTierOverlap           = "tier_overlap"
	WarnElectricityDivergence = "electricity_cost_divergence"
)

// Line error codes
const (
	LineErrMissingCostEntry = "missing_cost_entry"
	LineErrNoMatchingTier   = "no_matching_tier"
)

// Warning is a non-fatal data-integrity finding; computation proceeds with
// the corrected value.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LineCostBreakdown itemizes the per-unit service cost of a quote line.
type LineCostBreakdown struct {
	MaterialPerUnit       decimal.Decimal `json:"materialPerUnit"`
	ElectricityPerUnit    decimal.Decimal `json:"electricityPerUnit"`
	BusinessPerUnit       decimal.Decimal `json:"businessPerUnit"`
	ElectricityPerRun     decimal.Decimal `json:"electricityPerRun"`
	TierAdjustmentPercent decimal.Decimal `json:"tierAdjustmentPercent"`
	GlobalMarkupPercent   decimal.Decimal `json:"globalMarkupPercent"`
	Warnings              []Warning       `json:"warnings,omitempty"`
}

// QuoteLine is one priced product+quantity+services entry. A line that could
// not be priced carries ErrorCode/Error and zero pricing, and contributes
// nothing to the quote aggregates.
type QuoteLine struct {
	Product           ProductRef         `json:"product"`
	Quantity          int                `json:"quantity"`
	Services          []ServiceSelection `json:"services,omitempty"`
	UnitBaseCost      decimal.Decimal    `json:"unitBaseCost"`
	UnitMarkedUpPrice decimal.Decimal    `json:"unitMarkedUpPrice"`
	UnitServiceCost   decimal.Decimal    `json:"unitServiceCost"`
	LineTotal         decimal.Decimal    `json:"lineTotal"`
	Breakdown         LineCostBreakdown  `json:"breakdown"`
	ErrorCode         string             `json:"errorCode,omitempty"`
	Error             string             `json:"error,omitempty"`
}

// Errored reports whether the line failed to price.
func (l QuoteLine) Errored() bool {
	return l.ErrorCode != ""
}

// Quote is the immutable result of one pricing pass. The engine fills
// everything except ID and CreatedAt, which the caller assigns exactly once;
// re-pricing means a new Quote, never an in-place patch.
type Quote struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"createdAt"`
	Lines         []QuoteLine     `json:"lines"`
	Policy        PricingPolicy   `json:"policy"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	MarginPercent decimal.Decimal `json:"marginPercent"`
	Status        string          `json:"status"`
}

// HasErroredLines reports whether any line carries an error marker.
func (q *Quote) HasErroredLines() bool {
	for _, l := range q.Lines {
		if l.Errored() {
			return true
		}
	}
	return false
}
