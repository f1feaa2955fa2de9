package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"stitchquote/errs"
	"stitchquote/models"
)

// electricityEpsilon is the tolerance when cross-checking a stored
// cost_per_run against the recomputed value (half of the 3dp precision the
// stored column carries).
var electricityEpsilon = decimal.New(5, -4) // 0.0005

// Scale factors applied when a material entry is priced for a different logo
// size than the one selected.
var (
	factorLargeFromSmall = decimal.New(25, -1) // 2.5
	factorSmallFromLarge = decimal.New(4, -1)  // 0.4
)

// ServiceCostResult is the itemized cost of one service selection.
type ServiceCostResult struct {
	// PerUnit is the full per-unit service cost (material + amortized
	// electricity + allocated business costs).
	PerUnit decimal.Decimal

	// PerRun is the total recomputed electricity cost of one process run,
	// before amortization over the line quantity.
	PerRun decimal.Decimal

	MaterialPerUnit    decimal.Decimal
	ElectricityPerUnit decimal.Decimal
	BusinessPerUnit    decimal.Decimal

	Warnings []models.Warning
}

// ComputeServiceCost prices one service selection against the snapshot.
//
// Material entries contribute cost-per-logo × logo count (scaled when the
// entry is priced for the other logo size). Electricity entries contribute
// their recomputed per-run cost × placement count, amortized over the line
// quantity. Business entries are allocated per unit by their configured
// allocation rule. A missing cost entry reference is fatal for the line but
// never for the rest of the quote.
func ComputeServiceCost(sel models.ServiceSelection, quantity int, snap *Snapshot) (ServiceCostResult, error) {
	res := ServiceCostResult{}
	if !sel.Valid() {
		return res, errs.Newf(errs.TypeInput, "malformed service selection of type %q", sel.ServiceType)
	}
	if quantity < 1 {
		return res, errs.Newf(errs.TypeInput, "quantity must be at least 1, got %d", quantity)
	}

	qty := decimal.NewFromInt(int64(quantity))
	logoCount := decimal.NewFromInt(int64(sel.LogoCount))
	placements := decimal.NewFromInt(int64(max(sel.PlacementCount, 1)))

	for _, ref := range sel.CostEntryRefs {
		entry, ok := snap.Entry(ref)
		if !ok {
			return ServiceCostResult{}, errs.Newf(errs.TypeConfig, "cost entry %q referenced by %s service is missing", ref, sel.ServiceType)
		}
		if err := entry.Validate(); err != nil {
			return ServiceCostResult{}, err
		}

		switch entry.Kind {
		case models.CostKindMaterial:
			m := entry.Material
			perLogo := m.CostPerLogo.Mul(logoSizeFactor(m.LogoSize, sel.LogoSize))
			res.MaterialPerUnit = res.MaterialPerUnit.Add(perLogo.Mul(logoCount))

		case models.CostKindElectricity:
			e := entry.Electricity
			perRun := e.RecomputedCostPerRun()
			if warn, diverged := electricityDivergence(*e, perRun); diverged {
				res.Warnings = append(res.Warnings, warn)
			}
			res.PerRun = res.PerRun.Add(perRun.Mul(placements))

		case models.CostKindBusiness:
			b := entry.Business
			res.BusinessPerUnit = res.BusinessPerUnit.Add(allocateBusinessCost(*b, qty))
		}
	}

	// Amortize the run cost over the whole line quantity.
	res.ElectricityPerUnit = res.PerRun.Div(qty)
	res.PerUnit = res.MaterialPerUnit.Add(res.ElectricityPerUnit).Add(res.BusinessPerUnit)
	return res, nil
}

// electricityDivergence cross-checks a stored cost_per_run against the
// recomputed value. The recomputed value always wins; a divergence beyond
// the epsilon is reported so stale config can be fixed.
func electricityDivergence(e models.ElectricityCost, recomputed decimal.Decimal) (models.Warning, bool) {
	if e.CostPerRun.IsZero() {
		return models.Warning{}, false
	}
	if e.CostPerRun.Sub(recomputed).Abs().Cmp(electricityEpsilon) <= 0 {
		return models.Warning{}, false
	}
	return models.Warning{
		Code: models.WarnElectricityDivergence,
		Message: fmt.Sprintf("stored cost per run %s for %q diverges from recomputed %s; using recomputed value",
			e.CostPerRun.String(), e.Key(), recomputed.String()),
	}, true
}

// allocateBusinessCost apportions a business cost per unit. With a lifetime
// allocation the share is cost ÷ expected lifetime units; otherwise the full
// cost attaches to the run and is amortized over the line quantity.
func allocateBusinessCost(b models.BusinessCost, quantity decimal.Decimal) decimal.Decimal {
	if b.LifetimeUnits > 0 {
		return b.CostValue.Div(decimal.NewFromInt(b.LifetimeUnits))
	}
	return b.CostValue.Div(quantity)
}

// logoSizeFactor scales a material cost priced for one logo size onto the
// selected size. Matching (or unspecified) sizes pass through unscaled.
func logoSizeFactor(entrySize, selectedSize string) decimal.Decimal {
	es := strings.ToLower(strings.TrimSpace(entrySize))
	ss := strings.ToLower(strings.TrimSpace(selectedSize))
	if es == "" || ss == "" || es == ss {
		return decimal.NewFromInt(1)
	}
	if es == strings.ToLower(models.LogoSizeSmall) && ss == strings.ToLower(models.LogoSizeLarge) {
		return factorLargeFromSmall
	}
	if es == strings.ToLower(models.LogoSizeLarge) && ss == strings.ToLower(models.LogoSizeSmall) {
		return factorSmallFromLarge
	}
	return decimal.NewFromInt(1)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
