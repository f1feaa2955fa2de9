package controller

import (
	"net/http"
	"strings"

	"stitchquote/errs"
	"stitchquote/logging"
	"stitchquote/repository"
	"stitchquote/service"
)

// maxImportSize caps uploaded price list workbooks at 32 MiB.
const maxImportSize = 32 << 20

// CatalogController handles HTTP requests for the product catalog
type CatalogController struct {
	store  repository.CatalogAccessor
	ingest *service.IngestService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(store repository.CatalogAccessor, ingest *service.IngestService) *CatalogController {
	return &CatalogController{
		store:  store,
		ingest: ingest,
	}
}

// ListValues handles GET /catalog/values?column=supplier
// Returns the distinct values of one filterable catalog column.
func (c *CatalogController) ListValues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	column := strings.TrimSpace(r.URL.Query().Get("column"))
	if column == "" {
		writeError(w, errs.Input("column query parameter is required"))
		return
	}

	values, err := c.store.ListUniqueValues(r.Context(), column)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"column": column,
		"values": values,
	})
}

// Lookup handles GET /catalog/lookup?supplier=&styleNo=&colour=&size=
// Resolves one product and its base price.
func (c *CatalogController) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	supplier := strings.TrimSpace(q.Get("supplier"))
	styleNo := strings.TrimSpace(q.Get("styleNo"))
	colour := strings.TrimSpace(q.Get("colour"))
	size := strings.TrimSpace(q.Get("size"))

	if supplier == "" || styleNo == "" || colour == "" || size == "" {
		writeError(w, errs.Input("supplier, styleNo, colour and size query parameters are required"))
		return
	}

	product, err := c.store.Lookup(r.Context(), supplier, styleNo, colour, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// ImportPriceList handles POST /admin/catalog/import
// Accepts a multipart upload of a supplier price list workbook (field "file")
// and replaces the catalog with its contents. An optional "sheet" field
// overrides the default sheet name.
func (c *CatalogController) ImportPriceList(w http.ResponseWriter, r *http.Request) {
	logging.Infof("📥 ImportPriceList: received %s request", r.Method)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, errs.Wrap(errs.TypeInput, "invalid multipart upload", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errs.Wrap(errs.TypeInput, "workbook file is required (field \"file\")", err))
		return
	}
	defer file.Close()

	sheet := strings.TrimSpace(r.FormValue("sheet"))

	result, err := c.ingest.ImportPriceList(r.Context(), file, sheet)
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Infof("✅ ImportPriceList: %s imported=%d skipped=%d", header.Filename, result.Imported, result.Skipped)
	writeJSON(w, http.StatusOK, result)
}
