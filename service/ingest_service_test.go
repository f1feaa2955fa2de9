package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

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

// fakeCatalog records what ReplaceCatalog receives.
type fakeCatalog struct {
	replaced []models.ProductRef
}

func (f *fakeCatalog) Lookup(ctx context.Context, supplier, styleNo, colour, size string) (*models.ProductRef, error) {
	return nil, errs.NotFound("product", supplier)
}

func (f *fakeCatalog) ListUniqueValues(ctx context.Context, column string) ([]string, error) {
	return nil, nil
}

func (f *fakeCatalog) ReplaceCatalog(ctx context.Context, products []models.ProductRef) (int, error) {
	f.replaced = products
	return len(products), nil
}

// buildWorkbook assembles a price list workbook: one decorative title row,
// then the header row, then data rows.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	_, err := xl.NewSheet(sheet)
	require.NoError(t, err)

	require.NoError(t, xl.SetSheetRow(sheet, "A1", &[]interface{}{"Price list valid from January 2025"}))
	require.NoError(t, xl.SetSheetRow(sheet, "A2", &[]interface{}{"Supplier", "Style No", "Colours", "Sizes", "Price"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		require.NoError(t, err)
		require.NoError(t, xl.SetSheetRow(sheet, cell, &row))
	}

	buf, err := xl.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportPriceList(t *testing.T) {
	buf := buildWorkbook(t, DefaultPriceListSheet, [][]interface{}{
		{"Ralawise", "GD01", "Black", "M", "4.50"},
		{"Ralawise", "GD01", "White", "L", "£4.25"},
		{"AWDis", "JH001", "Red", "XL", "1,009.99"},
	})

	store := &fakeCatalog{}
	result, err := NewIngestService(store).ImportPriceList(context.Background(), buf, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultPriceListSheet, result.Sheet)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	require.Len(t, store.replaced, 3)
	assert.Equal(t, "Ralawise", store.replaced[0].Supplier)
	assert.True(t, store.replaced[1].BasePrice.Equal(dec("4.25")), "currency symbol must be stripped")
	assert.True(t, store.replaced[2].BasePrice.Equal(dec("1009.99")), "thousands separator must be stripped")
}

func TestImportPriceListSkipsBadRows(t *testing.T) {
	buf := buildWorkbook(t, DefaultPriceListSheet, [][]interface{}{
		{"Ralawise", "GD01", "Black", "M", "4.50"},
		{"", "GD01", "Black", "M", "4.50"},         // missing supplier
		{"Ralawise", "GD01", "Black", "", "4.50"},  // missing size
		{"Ralawise", "GD01", "Black", "S", "n/a"},  // unparseable price
		{"Ralawise", "GD01", "Black", "L", "-1.5"}, // negative price
	})

	store := &fakeCatalog{}
	result, err := NewIngestService(store).ImportPriceList(context.Background(), buf, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 4, result.Skipped)
}

func TestImportPriceListAllRowsBadFails(t *testing.T) {
	buf := buildWorkbook(t, DefaultPriceListSheet, [][]interface{}{
		{"", "", "", "", ""},
	})

	_, err := NewIngestService(&fakeCatalog{}).ImportPriceList(context.Background(), buf, "")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeInput))
}

func TestImportPriceListMissingHeaderColumn(t *testing.T) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	require.NoError(t, xl.SetSheetRow(sheet, "A1", &[]interface{}{"title"}))
	require.NoError(t, xl.SetSheetRow(sheet, "A2", &[]interface{}{"Supplier", "Colours", "Sizes", "Price"}))
	require.NoError(t, xl.SetSheetRow(sheet, "A3", &[]interface{}{"Ralawise", "Black", "M", "4.50"}))

	buf, err := xl.WriteToBuffer()
	require.NoError(t, err)

	_, err = NewIngestService(&fakeCatalog{}).ImportPriceList(context.Background(), buf, "")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeInput))
}

func TestImportPriceListExplicitSheetName(t *testing.T) {
	buf := buildWorkbook(t, "Custom Sheet", [][]interface{}{
		{"Ralawise", "GD01", "Black", "M", "4.50"},
	})

	store := &fakeCatalog{}
	result, err := NewIngestService(store).ImportPriceList(context.Background(), buf, "custom sheet")
	require.NoError(t, err)
	assert.Equal(t, "Custom Sheet", result.Sheet)
	assert.Equal(t, 1, result.Imported)
}

func TestImportPriceListGarbageInput(t *testing.T) {
	_, err := NewIngestService(&fakeCatalog{}).ImportPriceList(context.Background(), bytes.NewReader([]byte("not a workbook")), "")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.TypeInput))
}
