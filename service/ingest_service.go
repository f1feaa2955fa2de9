package service

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"stitchquote/errs"
	"stitchquote/logging"
	"stitchquote/models"
	"stitchquote/repository"
)

// DefaultPriceListSheet is the sheet name the supplier ships price lists
// under. The first row of the sheet is decorative and is skipped.
const DefaultPriceListSheet = "Ralawise Price List 2025"

// IngestService loads supplier price list workbooks into the catalog.
type IngestService struct {
	store repository.CatalogAccessor
}

// IngestResult summarizes one catalog import.
type IngestResult struct {
	Sheet    string `json:"sheet"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// NewIngestService creates a new IngestService
func NewIngestService(store repository.CatalogAccessor) *IngestService {
	return &IngestService{store: store}
}

// ImportPriceList parses an Excel price list and replaces the catalog with
// its rows. Rows missing any identity column or carrying an unparseable price
// are skipped and counted, never fatal. An empty sheetName selects the
// default supplier sheet, falling back to the workbook's first sheet.
func (s *IngestService) ImportPriceList(ctx context.Context, r io.Reader, sheetName string) (*IngestResult, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.TypeInput, "failed to open workbook", err)
	}
	defer func() { _ = xl.Close() }()

	sheet := resolveSheet(xl, sheetName)
	if sheet == "" {
		return nil, errs.Input("workbook has no sheets")
	}

	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, errs.Wrapf(errs.TypeInput, err, "failed to read sheet %q", sheet)
	}
	if len(rows) < 2 {
		return nil, errs.Newf(errs.TypeInput, "sheet %q has no data rows", sheet)
	}

	cols, err := mapColumns(rows[1])
	if err != nil {
		return nil, err
	}

	var products []models.ProductRef
	skipped := 0
	for _, row := range rows[2:] {
		p, ok := parsePriceRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, errs.Newf(errs.TypeInput, "sheet %q yielded no valid products (%d rows skipped)", sheet, skipped)
	}

	imported, err := s.store.ReplaceCatalog(ctx, products)
	if err != nil {
		return nil, err
	}

	logging.Infof("✓ Price list imported: sheet=%q imported=%d skipped=%d", sheet, imported, skipped)
	return &IngestResult{Sheet: sheet, Imported: imported, Skipped: skipped}, nil
}

// columnIndexes holds the resolved position of each catalog column in the
// header row.
type columnIndexes struct {
	supplier, styleNo, colour, size, price int
}

// resolveSheet picks the requested sheet, the default supplier sheet, or the
// workbook's first sheet, in that order.
func resolveSheet(xl *excelize.File, requested string) string {
	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	candidates := []string{requested, DefaultPriceListSheet}
	for _, want := range candidates {
		if want == "" {
			continue
		}
		for _, have := range sheets {
			if strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(want)) {
				return have
			}
		}
	}
	return sheets[0]
}

// mapColumns resolves header names to column positions. Header spelling in
// supplier sheets varies between singular and plural.
func mapColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{supplier: -1, styleNo: -1, colour: -1, size: -1, price: -1}
	for i, h := range header {
		switch normalizeHeader(h) {
		case "supplier":
			cols.supplier = i
		case "style no", "style number", "product group", "style":
			cols.styleNo = i
		case "colour", "colours", "color", "colors":
			cols.colour = i
		case "size", "sizes":
			cols.size = i
		case "price", "unit price", "price gbp":
			cols.price = i
		}
	}
	if cols.supplier < 0 || cols.styleNo < 0 || cols.colour < 0 || cols.size < 0 || cols.price < 0 {
		return cols, errs.Input("price list header is missing one of: Supplier, Style No, Colour, Size, Price")
	}
	return cols, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// parsePriceRow converts one sheet row into a product, reporting whether the
// row is usable.
func parsePriceRow(row []string, cols columnIndexes) (models.ProductRef, bool) {
	p := models.ProductRef{
		Supplier: cell(row, cols.supplier),
		StyleNo:  cell(row, cols.styleNo),
		Colour:   cell(row, cols.colour),
		Size:     cell(row, cols.size),
	}
	if !p.Valid() {
		return models.ProductRef{}, false
	}

	raw := strings.TrimPrefix(cell(row, cols.price), "£")
	raw = strings.ReplaceAll(raw, ",", "")
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return models.ProductRef{}, false
	}
	p.BasePrice = price
	return p, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
