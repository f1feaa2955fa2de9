package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitchquote/errs"
	"stitchquote/models"
)

func testPolicy() models.PricingPolicy {
	return models.PricingPolicy{
		DiscountTiers:       models.DefaultDiscountTiers(),
		GlobalMarkupPercent: dec("20"),
	}
}

func tee(qty int) LineRequest {
	return LineRequest{
		Product: models.ProductRef{
			Supplier:  "Ralawise",
			StyleNo:   "GD01",
			Colour:    "Black",
			Size:      "L",
			BasePrice: dec("10"),
		},
		Quantity: qty,
	}
}

func TestPriceQuoteTierThenGlobalMarkupCompound(t *testing.T) {
	engine := NewEngine(testSnapshot())

	// qty 25 sits in the 10% discount bracket: 10 × 0.90 × 1.20 = 10.80.
	quote, err := engine.PriceQuote([]LineRequest{tee(25)}, testPolicy())
	require.NoError(t, err)
	require.Len(t, quote.Lines, 1)

	line := quote.Lines[0]
	assert.True(t, line.UnitMarkedUpPrice.Equal(dec("10.80")), "got %s", line.UnitMarkedUpPrice)
	assert.True(t, line.LineTotal.Equal(dec("270")), "got %s", line.LineTotal)
	assert.Equal(t, models.QuoteStatusDraft, quote.Status)
}

func TestPriceQuotePerUnitPriceEqualWithinTier(t *testing.T) {
	engine := NewEngine(testSnapshot())
	policy := testPolicy()

	// All quantities in [25, 50) share the same per-unit price.
	var want decimal.Decimal
	for qty := 25; qty < 50; qty++ {
		quote, err := engine.PriceQuote([]LineRequest{tee(qty)}, policy)
		require.NoError(t, err)
		unit := quote.Lines[0].UnitMarkedUpPrice
		if qty == 25 {
			want = unit
			continue
		}
		assert.Truef(t, unit.Equal(want), "qty %d: unit price %s != %s", qty, unit, want)
	}
}

func TestPriceQuoteSingleRoundingPoint(t *testing.T) {
	engine := NewEngine(testSnapshot())
	policy := models.PricingPolicy{
		DiscountTiers: []models.DiscountTier{{MinQty: 1, MaxQty: 0}},
	}

	// Unit price 9.995 × 3 = 29.985, rounded once to 29.99. Rounding each
	// unit first would give 10.00 × 3 = 30.00.
	req := LineRequest{
		Product:  models.ProductRef{Supplier: "S", StyleNo: "X", Colour: "C", Size: "M", BasePrice: dec("9.995")},
		Quantity: 3,
	}
	quote, err := engine.PriceQuote([]LineRequest{req}, policy)
	require.NoError(t, err)
	assert.True(t, quote.Lines[0].LineTotal.Equal(dec("29.99")), "got %s", quote.Lines[0].LineTotal)
}

func TestPriceQuoteRoundingRules(t *testing.T) {
	engine := NewEngine(testSnapshot())
	req := LineRequest{
		Product:  models.ProductRef{Supplier: "S", StyleNo: "X", Colour: "C", Size: "M", BasePrice: dec("9.995")},
		Quantity: 3,
	}
	tiers := []models.DiscountTier{{MinQty: 1, MaxQty: 0}}

	cases := []struct {
		rule models.RoundingRule
		want string
	}{
		{models.RoundHalfUp, "29.99"},
		{models.RoundHalfEven, "29.98"},
		{models.RoundDown, "29.98"},
	}
	for _, tc := range cases {
		quote, err := engine.PriceQuote([]LineRequest{req}, models.PricingPolicy{DiscountTiers: tiers, Rounding: tc.rule})
		require.NoError(t, err)
		assert.Truef(t, quote.Lines[0].LineTotal.Equal(dec(tc.want)),
			"%s: got %s, want %s", tc.rule, quote.Lines[0].LineTotal, tc.want)
	}
}

func TestPriceQuoteIsIdempotent(t *testing.T) {
	press := models.NewElectricityEntry(models.ElectricityCost{
		ProcessType:    "Print",
		ProcessName:    "Heat Press",
		AvgTimeMinutes: dec("30"),
		MachineWatts:   dec("500"),
		CostPerKwh:     dec("0.20"),
	})
	engine := NewEngine(testSnapshot(press))

	req := tee(30)
	req.Services = []models.ServiceSelection{printSelection(press.Key())}
	policy := testPolicy()

	first, err := engine.PriceQuote([]LineRequest{req}, policy)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := engine.PriceQuote([]LineRequest{req}, policy)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPriceQuotePartialFailureKeepsGoodLines(t *testing.T) {
	film := models.NewMaterialEntry(models.MaterialCost{
		MaterialType: "Film",
		LogoSize:     models.LogoSizeSmall,
		CostPerLogo:  dec("0.30"),
	})
	engine := NewEngine(testSnapshot(film))

	good := tee(10)
	good.Services = []models.ServiceSelection{printSelection(film.Key())}

	broken := tee(10)
	broken.Services = []models.ServiceSelection{printSelection("material/ink/small_logo")}

	alsoGood := tee(250)

	quote, err := engine.PriceQuote([]LineRequest{good, broken, alsoGood}, testPolicy())
	require.NoError(t, err)
	require.Len(t, quote.Lines, 3)

	assert.False(t, quote.Lines[0].Errored())
	assert.True(t, quote.Lines[1].Errored())
	assert.False(t, quote.Lines[2].Errored())

	assert.Equal(t, models.LineErrMissingCostEntry, quote.Lines[1].ErrorCode)
	assert.True(t, quote.Lines[1].LineTotal.IsZero())
	assert.True(t, quote.Lines[1].UnitMarkedUpPrice.IsZero())

	// Aggregates count only the two good lines.
	wantSubtotal := quote.Lines[0].LineTotal.Add(quote.Lines[2].LineTotal)
	assert.True(t, quote.Subtotal.Equal(wantSubtotal))
	assert.True(t, quote.HasErroredLines())
}

func TestPriceQuoteTierGapMarksLine(t *testing.T) {
	engine := NewEngine(testSnapshot())
	policy := models.PricingPolicy{
		DiscountTiers: []models.DiscountTier{{MinQty: 1, MaxQty: 10}},
	}

	quote, err := engine.PriceQuote([]LineRequest{tee(50)}, policy)
	require.NoError(t, err)
	require.Len(t, quote.Lines, 1)
	assert.Equal(t, models.LineErrNoMatchingTier, quote.Lines[0].ErrorCode)
	assert.True(t, quote.Subtotal.IsZero())
}

func TestPriceQuoteRejectsInvalidInputWholesale(t *testing.T) {
	engine := NewEngine(testSnapshot())

	_, err := engine.PriceQuote(nil, testPolicy())
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeInput))

	_, err = engine.PriceQuote([]LineRequest{tee(10), tee(0)}, testPolicy())
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeInput))
}

func TestMarginPercent(t *testing.T) {
	// subtotal 100, cost 60 → margin 40%.
	assert.True(t, marginPercent(dec("100"), dec("60"), 2).Equal(dec("40")))

	// zero subtotal is defined as zero margin, not a division error.
	assert.True(t, marginPercent(decimal.Zero, dec("60"), 2).Equal(decimal.Zero))
}

func TestQuoteMarginFromEngine(t *testing.T) {
	engine := NewEngine(testSnapshot())

	// qty 1, no discount: unit 10 × 1.20 = 12, cost 10 → margin 16.67%.
	quote, err := engine.PriceQuote([]LineRequest{tee(1)}, testPolicy())
	require.NoError(t, err)
	assert.True(t, quote.MarginPercent.Equal(dec("16.67")), "got %s", quote.MarginPercent)
}

func TestFinalize(t *testing.T) {
	engine := NewEngine(testSnapshot())

	quote, err := engine.PriceQuote([]LineRequest{tee(10)}, testPolicy())
	require.NoError(t, err)

	finalized, err := Finalize(quote, false)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusFinal, finalized.Status)
	// The original draft is untouched.
	assert.Equal(t, models.QuoteStatusDraft, quote.Status)

	// Finalizing an already-final quote is a no-op.
	again, err := Finalize(finalized, false)
	require.NoError(t, err)
	assert.Equal(t, finalized, again)
}

func TestFinalizeEmptyQuoteFails(t *testing.T) {
	_, err := Finalize(nil, false)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeConfig))

	_, err = Finalize(&models.Quote{}, true)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeConfig))
}

func TestFinalizeWithErroredLines(t *testing.T) {
	engine := NewEngine(testSnapshot())

	broken := tee(10)
	broken.Services = []models.ServiceSelection{printSelection("material/ink/small_logo")}

	quote, err := engine.PriceQuote([]LineRequest{tee(10), broken}, testPolicy())
	require.NoError(t, err)
	require.True(t, quote.HasErroredLines())

	_, err = Finalize(quote, false)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeConfig))

	finalized, err := Finalize(quote, true)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusFinal, finalized.Status)
}
