package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stitchquote/errs"
	"stitchquote/models"
)

// LineRequest is one product+quantity+services input to a pricing pass.
type LineRequest struct {
	Product  models.ProductRef         `json:"product"`
	Quantity int                       `json:"quantity"`
	Services []models.ServiceSelection `json:"services,omitempty"`
}

// Engine prices quotes against one immutable cost snapshot. It performs no
// I/O and keeps no mutable state, so identical inputs always produce
// identical output.
type Engine struct {
	snap *Snapshot
}

// NewEngine creates a pricing engine bound to a snapshot.
func NewEngine(snap *Snapshot) *Engine {
	return &Engine{snap: snap}
}

// PriceQuote computes a fully itemized draft quote.
//
// Per line: the tier adjustment applies to the base price first and the
// global markup compounds on top (the order is contractual — reversing it
// changes totals). The line total is rounded exactly once, per the policy's
// rounding rule. A line whose tier or cost entries cannot be resolved is
// kept with an error marker and zero pricing rather than failing the whole
// quote; input validation errors reject the entire call instead.
//
// ID and CreatedAt are left for the caller to assign once.
func (e *Engine) PriceQuote(lines []LineRequest, policy models.PricingPolicy) (*models.Quote, error) {
	if len(lines) == 0 {
		return nil, errs.Input("at least one quote line is required")
	}
	for i, l := range lines {
		if l.Quantity < 1 {
			return nil, errs.Newf(errs.TypeInput, "line %d: quantity must be at least 1, got %d", i+1, l.Quantity)
		}
		for _, s := range l.Services {
			if !s.Valid() {
				return nil, errs.Newf(errs.TypeInput, "line %d: malformed %s service selection", i+1, s.ServiceType)
			}
		}
	}

	quote := &models.Quote{
		Lines:  make([]models.QuoteLine, 0, len(lines)),
		Policy: policy,
		Status: models.QuoteStatusDraft,
	}

	globalFactor := percentFactor(policy.GlobalMarkupPercent)

	subtotal := decimal.Zero
	totalCost := decimal.Zero

	for _, req := range lines {
		line := e.priceLine(req, policy, globalFactor)
		quote.Lines = append(quote.Lines, line)
		if line.Errored() {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		subtotal = subtotal.Add(line.LineTotal)
		totalCost = totalCost.Add(line.UnitBaseCost.Add(line.UnitServiceCost).Mul(qty))
	}

	places := policy.Places()
	quote.Subtotal = subtotal
	quote.TotalRevenue = subtotal
	quote.TotalCost = applyRounding(totalCost, policy.Rounding, places)
	quote.MarginPercent = marginPercent(subtotal, totalCost, places)
	return quote, nil
}

// priceLine prices a single line. Configuration failures are recorded on the
// line and zero out its pricing.
func (e *Engine) priceLine(req LineRequest, policy models.PricingPolicy, globalFactor decimal.Decimal) models.QuoteLine {
	line := models.QuoteLine{
		Product:  req.Product,
		Quantity: req.Quantity,
		Services: req.Services,
	}

	tier, warnings, err := ResolveTier(req.Quantity, policy.DiscountTiers)
	if err != nil {
		return erroredLine(line, models.LineErrNoMatchingTier, err)
	}

	unitService := decimal.Zero
	breakdown := models.LineCostBreakdown{
		TierAdjustmentPercent: tier.AdjustmentPercent(),
		GlobalMarkupPercent:   policy.GlobalMarkupPercent,
		Warnings:              warnings,
	}

	for _, sel := range req.Services {
		res, err := ComputeServiceCost(sel, req.Quantity, e.snap)
		if err != nil {
			return erroredLine(line, models.LineErrMissingCostEntry, err)
		}
		unitService = unitService.Add(res.PerUnit)
		breakdown.MaterialPerUnit = breakdown.MaterialPerUnit.Add(res.MaterialPerUnit)
		breakdown.ElectricityPerUnit = breakdown.ElectricityPerUnit.Add(res.ElectricityPerUnit)
		breakdown.BusinessPerUnit = breakdown.BusinessPerUnit.Add(res.BusinessPerUnit)
		breakdown.ElectricityPerRun = breakdown.ElectricityPerRun.Add(res.PerRun)
		breakdown.Warnings = append(breakdown.Warnings, res.Warnings...)
	}

	base := req.Product.BasePrice
	marked := base.Mul(percentFactor(tier.AdjustmentPercent())).Mul(globalFactor)
	qty := decimal.NewFromInt(int64(req.Quantity))

	line.UnitBaseCost = base
	line.UnitMarkedUpPrice = marked
	line.UnitServiceCost = unitService
	// The single rounding point for the line.
	line.LineTotal = applyRounding(marked.Add(unitService).Mul(qty), policy.Rounding, policy.Places())
	line.Breakdown = breakdown
	return line
}

// Finalize transitions a draft quote to final and returns the finalized
// copy. An empty quote cannot be finalized; a quote with errored lines can
// only be finalized when the caller explicitly allows a partial quote.
func Finalize(q *models.Quote, allowPartial bool) (*models.Quote, error) {
	if q == nil || len(q.Lines) == 0 {
		return nil, errs.Config("cannot finalize an empty quote")
	}
	if q.Status == models.QuoteStatusFinal {
		return q, nil
	}
	if q.HasErroredLines() && !allowPartial {
		return nil, errs.Config("quote has unresolved lines; fix the configuration or finalize with partial-allow")
	}

	finalized := *q
	finalized.Lines = append([]models.QuoteLine(nil), q.Lines...)
	finalized.Status = models.QuoteStatusFinal
	return &finalized, nil
}

// erroredLine zeroes a line's pricing and attaches the error marker.
func erroredLine(line models.QuoteLine, code string, err error) models.QuoteLine {
	line.ErrorCode = code
	line.Error = fmt.Sprintf("cannot price line for %s: %v", line.Product.Key(), err)
	line.UnitBaseCost = decimal.Zero
	line.UnitMarkedUpPrice = decimal.Zero
	line.UnitServiceCost = decimal.Zero
	line.LineTotal = decimal.Zero
	return line
}

// percentFactor converts a percentage into a multiplicative factor (1 + p/100).
func percentFactor(p decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(p.Div(decimal.NewFromInt(100)))
}

// marginPercent computes (subtotal − totalCost) / subtotal × 100, defined as
// 0 when subtotal is 0.
func marginPercent(subtotal, totalCost decimal.Decimal, places int32) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return subtotal.Sub(totalCost).Div(subtotal).Mul(decimal.NewFromInt(100)).Round(places)
}
