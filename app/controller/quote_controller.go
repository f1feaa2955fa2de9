package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"stitchquote/errs"
	"stitchquote/logging"
	"stitchquote/models"
	"stitchquote/pricing"
	"stitchquote/repository"
	"stitchquote/service"
)

// QuoteController handles HTTP requests for pricing, saving and exporting quotes
type QuoteController struct {
	store     repository.Store
	snapshots *service.SnapshotService
	exporter  *service.QuoteExportService
	drive     service.DriveServiceInterface // nil when Drive is not configured
	validate  *validator.Validate
}

// NewQuoteController creates a new QuoteController
func NewQuoteController(
	store repository.Store,
	snapshots *service.SnapshotService,
	exporter *service.QuoteExportService,
	drive service.DriveServiceInterface,
) *QuoteController {
	return &QuoteController{
		store:     store,
		snapshots: snapshots,
		exporter:  exporter,
		drive:     drive,
		validate:  validator.New(),
	}
}

// PriceQuoteRequest is the body of POST /quotes/price
type PriceQuoteRequest struct {
	Lines  []PriceLineRequest    `json:"lines" validate:"required,min=1,dive"`
	Policy *models.PricingPolicy `json:"policy"`
}

// PriceLineRequest identifies one catalog product plus its decoration services
type PriceLineRequest struct {
	Supplier string                    `json:"supplier" validate:"required"`
	StyleNo  string                    `json:"styleNo" validate:"required"`
	Colour   string                    `json:"colour" validate:"required"`
	Size     string                    `json:"size" validate:"required"`
	Quantity int                       `json:"quantity" validate:"required,min=1"`
	Services []models.ServiceSelection `json:"services" validate:"omitempty,dive"`
}

// PriceQuote handles POST /quotes/price
// Prices the requested lines against the current cost snapshot and returns a
// draft quote. Nothing is persisted.
func (c *QuoteController) PriceQuote(w http.ResponseWriter, r *http.Request) {
	logging.Infof("📥 PriceQuote: received %s request", r.Method)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PriceQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Wrap(errs.TypeInput, "invalid request body", err))
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, errs.Wrap(errs.TypeInput, "invalid pricing request", err))
		return
	}

	ctx := r.Context()

	lines := make([]pricing.LineRequest, 0, len(req.Lines))
	for i, l := range req.Lines {
		product, err := c.store.Lookup(ctx, l.Supplier, l.StyleNo, l.Colour, l.Size)
		if err != nil {
			if errs.IsType(err, errs.TypeNotFound) {
				writeError(w, errs.Newf(errs.TypeInput, "line %d: %v", i+1, err))
				return
			}
			writeError(w, err)
			return
		}
		lines = append(lines, pricing.LineRequest{
			Product:  *product,
			Quantity: l.Quantity,
			Services: l.Services,
		})
	}

	policy := models.PricingPolicy{DiscountTiers: models.DefaultDiscountTiers()}
	if req.Policy != nil {
		policy = *req.Policy
		if len(policy.DiscountTiers) == 0 {
			policy.DiscountTiers = models.DefaultDiscountTiers()
		}
	}

	snap, err := c.snapshots.BuildSnapshot(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	quote, err := pricing.NewEngine(snap).PriceQuote(lines, policy)
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Infof("✅ PriceQuote: priced %d lines, subtotal=%s", len(quote.Lines), quote.Subtotal.String())
	writeJSON(w, http.StatusOK, quote)
}

// SaveQuote handles POST /quotes/save
// Persists a priced quote, assigning its ID and creation timestamp on first save.
func (c *QuoteController) SaveQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var quote models.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		writeError(w, errs.Wrap(errs.TypeInput, "invalid quote body", err))
		return
	}
	if len(quote.Lines) == 0 {
		writeError(w, errs.Input("a quote needs at least one line"))
		return
	}

	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}
	if quote.Status == "" {
		quote.Status = models.QuoteStatusDraft
	}

	id, err := c.store.SaveQuote(r.Context(), &quote)
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Infof("✅ SaveQuote: saved quote %s (%d lines)", id, len(quote.Lines))
	writeJSON(w, http.StatusOK, quote)
}

// GetQuote handles GET /quotes/{id}
func (c *QuoteController) GetQuote(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	quote, err := c.store.LoadQuote(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// FinalizeQuote handles POST /quotes/{id}/finalize
// Transitions a draft to final. Pass allowPartial=true to finalize a quote
// that still carries errored lines.
func (c *QuoteController) FinalizeQuote(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	quote, err := c.store.LoadQuote(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	allowPartial := r.URL.Query().Get("allowPartial") == "true"
	finalized, err := pricing.Finalize(quote, allowPartial)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := c.store.SaveQuote(ctx, finalized); err != nil {
		writeError(w, err)
		return
	}

	logging.Infof("✅ FinalizeQuote: quote %s finalized", id)
	writeJSON(w, http.StatusOK, finalized)
}

// RenderQuote handles GET /quotes/{id}/render
// Serves the HTML quote document, also used as the PDF print source.
func (c *QuoteController) RenderQuote(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	quote, err := c.store.LoadQuote(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	html, err := c.exporter.RenderQuoteHTML(quote)
	if err != nil {
		writeError(w, errs.Wrap(errs.TypeInternal, "failed to render quote", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		logging.Errorf("RenderQuote: failed to write response: %v", err)
	}
}

// QuotePDF handles GET /quotes/{id}/pdf
// Exports the quote document as an A4 PDF. With upload=drive and a configured
// Drive folder the PDF is also uploaded and the file ID returned in a header.
func (c *QuoteController) QuotePDF(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Fail fast before spinning up a browser.
	if _, err := c.store.LoadQuote(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	pdf, err := c.exporter.GeneratePDF(r.Context(), id)
	if err != nil {
		writeError(w, errs.Wrap(errs.TypeInternal, "failed to generate quote PDF", err))
		return
	}

	filename := fmt.Sprintf("quote_%s.pdf", id)

	if r.URL.Query().Get("upload") == "drive" {
		folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
		switch {
		case c.drive == nil:
			writeError(w, errs.Config("Drive upload requested but Drive is not configured"))
			return
		case folderID == "":
			writeError(w, errs.Input("folderId is required for Drive upload"))
			return
		}
		fileID, err := c.drive.UploadQuotePDF(folderID, filename, pdf)
		if err != nil {
			writeError(w, errs.Wrap(errs.TypeInternal, "failed to upload quote PDF", err))
			return
		}
		w.Header().Set("X-Drive-File-Id", fileID)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		logging.Errorf("QuotePDF: failed to write response: %v", err)
	}
}
