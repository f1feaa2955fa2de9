package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostEntryKeys(t *testing.T) {
	m := NewMaterialEntry(MaterialCost{MaterialType: "DTF Film", LogoSize: LogoSizeSmall})
	assert.Equal(t, "material/dtf_film/small_logo", m.Key())

	e := NewElectricityEntry(ElectricityCost{ProcessType: "Print", ProcessName: "Heat Press"})
	assert.Equal(t, "electricity/print/heat_press", e.Key())

	b := NewBusinessEntry(BusinessCost{CategoryID: 7, Name: "Van Depreciation"})
	assert.Equal(t, "business/7/van_depreciation", b.Key())

	assert.Empty(t, CostEntry{Kind: CostKindMaterial}.Key())
}

func TestRecomputedCostPerRun(t *testing.T) {
	e := ElectricityCost{
		AvgTimeMinutes: decimal.NewFromInt(30),
		MachineWatts:   decimal.NewFromInt(500),
		CostPerKwh:     decimal.RequireFromString("0.20"),
	}
	assert.True(t, e.RecomputedCostPerRun().Equal(decimal.RequireFromString("0.05")))
}

func TestCostEntryValidate(t *testing.T) {
	valid := NewBusinessEntry(BusinessCost{
		CategoryID: 1,
		Name:       "Rent",
		CostValue:  decimal.NewFromInt(800),
		CostType:   BusinessCostRecurring,
	})
	require.NoError(t, valid.Validate())

	negative := NewMaterialEntry(MaterialCost{
		MaterialType: "Ink",
		LogoSize:     LogoSizeLarge,
		CostPerLogo:  decimal.NewFromInt(-1),
	})
	assert.Error(t, negative.Validate())

	badType := NewBusinessEntry(BusinessCost{
		CategoryID: 1,
		Name:       "Rent",
		CostValue:  decimal.NewFromInt(800),
		CostType:   "monthly",
	})
	assert.Error(t, badType.Validate())

	hollow := CostEntry{Kind: CostKindElectricity}
	assert.Error(t, hollow.Validate())

	unknown := CostEntry{Kind: "fuel"}
	assert.Error(t, unknown.Validate())
}

func TestDiscountTierContains(t *testing.T) {
	bounded := DiscountTier{MinQty: 10, MaxQty: 25}
	assert.False(t, bounded.Contains(9))
	assert.True(t, bounded.Contains(10))
	assert.True(t, bounded.Contains(24))
	assert.False(t, bounded.Contains(25))

	open := DiscountTier{MinQty: 250, MaxQty: 0}
	assert.True(t, open.Contains(250))
	assert.True(t, open.Contains(1000000))
}

func TestAdjustmentPercent(t *testing.T) {
	tier := DiscountTier{
		MarkupPercent:   decimal.NewFromInt(5),
		DiscountPercent: decimal.NewFromInt(15),
	}
	assert.True(t, tier.AdjustmentPercent().Equal(decimal.NewFromInt(-10)))
}
