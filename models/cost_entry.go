package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"stitchquote/errs"
)

// CostKind discriminates the CostEntry variants.
type CostKind string

const (
	CostKindMaterial    CostKind = "material"
	CostKindElectricity CostKind = "electricity"
	CostKindBusiness    CostKind = "business"
)

// Logo size labels used by the material cost tables.
const (
	LogoSizeSmall = "Small Logo"
	LogoSizeLarge = "Large Logo"
)

// MaterialCost is the per-logo cost of a consumable (film, ink, powder,
// backing, thread) for a given logo size.
type MaterialCost struct {
	MaterialType    string          `json:"materialType"`
	MaterialName    string          `json:"materialName"`
	CostPerUnit     decimal.Decimal `json:"costPerUnit"`
	UnitMeasurement string          `json:"unitMeasurement"`
	UnitValue       decimal.Decimal `json:"unitValue"`
	LogoSize        string          `json:"logoSize"`
	CostPerLogo     decimal.Decimal `json:"costPerLogo"`
}

// Key returns the snapshot lookup key for the material entry.
func (m MaterialCost) Key() string {
	return "material/" + slugify(m.MaterialType) + "/" + slugify(m.LogoSize)
}

// ElectricityCost is the machine-time cost of one process run.
// CostPerRun is a stored convenience value; the calculator always recomputes
// it from (AvgTimeMinutes, MachineWatts, CostPerKwh) and only cross-checks
// the stored number.
type ElectricityCost struct {
	ProcessType    string          `json:"processType"`
	ProcessName    string          `json:"processName"`
	AvgTimeMinutes decimal.Decimal `json:"avgTimeMinutes"`
	CostPerKwh     decimal.Decimal `json:"costPerKwh"`
	MachineWatts   decimal.Decimal `json:"machineWatts"`
	UsageW         decimal.Decimal `json:"usageW"`
	CostPerRun     decimal.Decimal `json:"costPerRun"`
}

// Key returns the snapshot lookup key for the electricity entry.
func (e ElectricityCost) Key() string {
	return "electricity/" + slugify(e.ProcessType) + "/" + slugify(e.ProcessName)
}

// RecomputedCostPerRun derives the per-run cost from its inputs:
// (machineWatts/1000) kW × (avgTimeMinutes/60) h × costPerKwh.
func (e ElectricityCost) RecomputedCostPerRun() decimal.Decimal {
	kw := e.MachineWatts.Div(decimal.NewFromInt(1000))
	hours := e.AvgTimeMinutes.Div(decimal.NewFromInt(60))
	return kw.Mul(hours).Mul(e.CostPerKwh)
}

// Business cost types
const (
	BusinessCostFixed     = "fixed"
	BusinessCostRecurring = "recurring"
)

// BusinessCost is a generic business expense (labor rates, vehicle
// depreciation, waste allowance, rent...) attributable to a service category.
// LifetimeUnits is the allocation rule: when > 0 the per-unit share is
// CostValue ÷ LifetimeUnits; when 0 the cost is attributed per run and
// amortized over the line quantity.
type BusinessCost struct {
	CategoryID      int64           `json:"categoryId"`
	Name            string          `json:"name"`
	CostValue       decimal.Decimal `json:"costValue"`
	CostType        string          `json:"costType"`
	DateIncurred    string          `json:"dateIncurred,omitempty"`
	RecurringPeriod string          `json:"recurringPeriod,omitempty"`
	LifetimeUnits   int64           `json:"lifetimeUnits,omitempty"`
}

// Key returns the snapshot lookup key for the business cost entry.
func (b BusinessCost) Key() string {
	return fmt.Sprintf("business/%d/%s", b.CategoryID, slugify(b.Name))
}

// CostEntry is the tagged union over the three cost variants. Exactly one of
// the variant pointers is set, matching Kind.
type CostEntry struct {
	Kind        CostKind         `json:"kind"`
	Material    *MaterialCost    `json:"material,omitempty"`
	Electricity *ElectricityCost `json:"electricity,omitempty"`
	Business    *BusinessCost    `json:"business,omitempty"`
}

// NewMaterialEntry wraps a MaterialCost as a CostEntry.
func NewMaterialEntry(m MaterialCost) CostEntry {
	return CostEntry{Kind: CostKindMaterial, Material: &m}
}

// NewElectricityEntry wraps an ElectricityCost as a CostEntry.
func NewElectricityEntry(e ElectricityCost) CostEntry {
	return CostEntry{Kind: CostKindElectricity, Electricity: &e}
}

// NewBusinessEntry wraps a BusinessCost as a CostEntry.
func NewBusinessEntry(b BusinessCost) CostEntry {
	return CostEntry{Kind: CostKindBusiness, Business: &b}
}

// Key returns the snapshot lookup key for whichever variant is set.
func (c CostEntry) Key() string {
	switch c.Kind {
	case CostKindMaterial:
		if c.Material != nil {
			return c.Material.Key()
		}
	case CostKindElectricity:
		if c.Electricity != nil {
			return c.Electricity.Key()
		}
	case CostKindBusiness:
		if c.Business != nil {
			return c.Business.Key()
		}
	}
	return ""
}

// Validate checks the tagged-union shape and the non-negativity invariant on
// all numeric fields.
func (c CostEntry) Validate() error {
	switch c.Kind {
	case CostKindMaterial:
		if c.Material == nil {
			return errs.Config("material cost entry has no material payload")
		}
		m := c.Material
		if m.CostPerUnit.IsNegative() || m.UnitValue.IsNegative() || m.CostPerLogo.IsNegative() {
			return errs.Newf(errs.TypeConfig, "material cost %q has negative values", m.Key())
		}
	case CostKindElectricity:
		if c.Electricity == nil {
			return errs.Config("electricity cost entry has no electricity payload")
		}
		e := c.Electricity
		if e.AvgTimeMinutes.IsNegative() || e.CostPerKwh.IsNegative() ||
			e.MachineWatts.IsNegative() || e.UsageW.IsNegative() || e.CostPerRun.IsNegative() {
			return errs.Newf(errs.TypeConfig, "electricity cost %q has negative values", e.Key())
		}
	case CostKindBusiness:
		if c.Business == nil {
			return errs.Config("business cost entry has no business payload")
		}
		b := c.Business
		if b.CostValue.IsNegative() || b.LifetimeUnits < 0 {
			return errs.Newf(errs.TypeConfig, "business cost %q has negative values", b.Key())
		}
		if b.CostType != BusinessCostFixed && b.CostType != BusinessCostRecurring {
			return errs.Newf(errs.TypeConfig, "business cost %q has invalid cost type %q", b.Key(), b.CostType)
		}
	default:
		return errs.Newf(errs.TypeConfig, "unknown cost entry kind %q", c.Kind)
	}
	return nil
}

// slugify lowercases and joins words with underscores for use in keys.
func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "_")
}
