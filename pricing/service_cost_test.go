package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitchquote/errs"
	"stitchquote/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testSnapshot(entries ...models.CostEntry) *Snapshot {
	return NewSnapshot(entries)
}

func printSelection(refs ...string) models.ServiceSelection {
	return models.ServiceSelection{
		ServiceType:    models.ServicePrint,
		LogoCount:      1,
		LogoSize:       models.LogoSizeSmall,
		PlacementCount: 1,
		CostEntryRefs:  refs,
	}
}

func TestElectricityCostIsAlwaysRecomputed(t *testing.T) {
	// 500 W for 30 minutes at £0.20/kWh: (500/1000) × (30/60) × 0.20 = 0.05.
	// The stored 0.10 is stale and must lose to the recomputed value.
	entry := models.NewElectricityEntry(models.ElectricityCost{
		ProcessType:    "Print",
		ProcessName:    "Heat Press",
		AvgTimeMinutes: dec("30"),
		MachineWatts:   dec("500"),
		CostPerKwh:     dec("0.20"),
		CostPerRun:     dec("0.10"),
	})
	snap := testSnapshot(entry)

	res, err := ComputeServiceCost(printSelection(entry.Key()), 1, snap)
	require.NoError(t, err)

	assert.True(t, res.PerRun.Equal(dec("0.05")), "per run: got %s", res.PerRun)
	assert.True(t, res.ElectricityPerUnit.Equal(dec("0.05")))

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, models.WarnElectricityDivergence, res.Warnings[0].Code)
}

func TestElectricityNoWarningWithinEpsilon(t *testing.T) {
	entry := models.NewElectricityEntry(models.ElectricityCost{
		ProcessType:    "Print",
		ProcessName:    "Heat Press",
		AvgTimeMinutes: dec("30"),
		MachineWatts:   dec("500"),
		CostPerKwh:     dec("0.20"),
		CostPerRun:     dec("0.0503"), // within 0.0005 of recomputed 0.05
	})
	snap := testSnapshot(entry)

	res, err := ComputeServiceCost(printSelection(entry.Key()), 1, snap)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.True(t, res.PerRun.Equal(dec("0.05")))
}

func TestElectricityZeroStoredValueNeverWarns(t *testing.T) {
	entry := models.NewElectricityEntry(models.ElectricityCost{
		ProcessType:    "Embroidery",
		ProcessName:    "Machine",
		AvgTimeMinutes: dec("60"),
		MachineWatts:   dec("400"),
		CostPerKwh:     dec("0.25"),
	})
	snap := testSnapshot(entry)

	res, err := ComputeServiceCost(printSelection(entry.Key()), 1, snap)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	// 0.4 kW × 1 h × 0.25 = 0.10
	assert.True(t, res.PerRun.Equal(dec("0.1")))
}

func TestElectricityAmortizedOverQuantity(t *testing.T) {
	entry := models.NewElectricityEntry(models.ElectricityCost{
		ProcessType:    "Print",
		ProcessName:    "Heat Press",
		AvgTimeMinutes: dec("30"),
		MachineWatts:   dec("500"),
		CostPerKwh:     dec("0.20"),
	})
	snap := testSnapshot(entry)

	res, err := ComputeServiceCost(printSelection(entry.Key()), 10, snap)
	require.NoError(t, err)
	assert.True(t, res.PerRun.Equal(dec("0.05")))
	assert.True(t, res.ElectricityPerUnit.Equal(dec("0.005")))
}

func TestMaterialCostScalesWithLogoCountAndSize(t *testing.T) {
	entry := models.NewMaterialEntry(models.MaterialCost{
		MaterialType: "Film",
		LogoSize:     models.LogoSizeSmall,
		CostPerLogo:  dec("0.30"),
	})
	snap := testSnapshot(entry)

	sel := printSelection(entry.Key())
	sel.LogoCount = 2

	res, err := ComputeServiceCost(sel, 1, snap)
	require.NoError(t, err)
	assert.True(t, res.MaterialPerUnit.Equal(dec("0.60")), "got %s", res.MaterialPerUnit)

	// Selecting the large size against a small-logo entry scales by 2.5.
	sel.LogoSize = models.LogoSizeLarge
	res, err = ComputeServiceCost(sel, 1, snap)
	require.NoError(t, err)
	assert.True(t, res.MaterialPerUnit.Equal(dec("1.50")), "got %s", res.MaterialPerUnit)
}

func TestBusinessCostAllocation(t *testing.T) {
	lifetime := models.NewBusinessEntry(models.BusinessCost{
		CategoryID:    1,
		Name:          "Heat Press Depreciation",
		CostValue:     dec("600"),
		CostType:      models.BusinessCostFixed,
		LifetimeUnits: 12000,
	})
	perRun := models.NewBusinessEntry(models.BusinessCost{
		CategoryID: 2,
		Name:       "Setup Labor",
		CostValue:  dec("5"),
		CostType:   models.BusinessCostRecurring,
	})
	snap := testSnapshot(lifetime, perRun)

	res, err := ComputeServiceCost(printSelection(lifetime.Key(), perRun.Key()), 10, snap)
	require.NoError(t, err)

	// 600/12000 = 0.05 per unit; 5/10 = 0.50 per unit.
	assert.True(t, res.BusinessPerUnit.Equal(dec("0.55")), "got %s", res.BusinessPerUnit)
}

func TestMissingCostEntryIsConfigError(t *testing.T) {
	snap := testSnapshot()

	_, err := ComputeServiceCost(printSelection("material/film/small_logo"), 5, snap)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeConfig))
	assert.Contains(t, err.Error(), "material/film/small_logo")
}

func TestComputeServiceCostRejectsBadInput(t *testing.T) {
	snap := testSnapshot()

	_, err := ComputeServiceCost(printSelection(), 0, snap)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeInput))

	bad := models.ServiceSelection{ServiceType: "engraving"}
	_, err = ComputeServiceCost(bad, 5, snap)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeInput))
}

func TestServiceCostSumsAllComponents(t *testing.T) {
	film := models.NewMaterialEntry(models.MaterialCost{
		MaterialType: "Film",
		LogoSize:     models.LogoSizeSmall,
		CostPerLogo:  dec("0.30"),
	})
	press := models.NewElectricityEntry(models.ElectricityCost{
		ProcessType:    "Print",
		ProcessName:    "Heat Press",
		AvgTimeMinutes: dec("30"),
		MachineWatts:   dec("500"),
		CostPerKwh:     dec("0.20"),
	})
	labor := models.NewBusinessEntry(models.BusinessCost{
		CategoryID: 3,
		Name:       "Operator",
		CostValue:  dec("2"),
		CostType:   models.BusinessCostRecurring,
	})
	snap := testSnapshot(film, press, labor)

	res, err := ComputeServiceCost(printSelection(film.Key(), press.Key(), labor.Key()), 10, snap)
	require.NoError(t, err)

	// material 0.30 + electricity 0.05/10 + business 2/10 = 0.505
	assert.True(t, res.PerUnit.Equal(dec("0.505")), "got %s", res.PerUnit)
}
