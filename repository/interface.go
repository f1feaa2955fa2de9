package repository

import (
	"context"

	"stitchquote/models"
)

// Catalog column names. Both backends persist exactly this column set so
// catalog rows round-trip identically regardless of backend.
const (
	ColSupplier = "supplier"
	ColStyleNo  = "style_no"
	ColColour   = "colour"
	ColSize     = "size"
	ColPrice    = "price"
)

// filterableColumns is the whitelist for ListUniqueValues. Anything outside
// it is rejected before reaching SQL.
var filterableColumns = map[string]bool{
	ColSupplier: true,
	ColStyleNo:  true,
	ColColour:   true,
	ColSize:     true,
}

// CatalogAccessor resolves products from the supplier catalog.
type CatalogAccessor interface {
	Lookup(ctx context.Context, supplier, styleNo, colour, size string) (*models.ProductRef, error)
	ListUniqueValues(ctx context.Context, column string) ([]string, error)
	ReplaceCatalog(ctx context.Context, products []models.ProductRef) (int, error)
}

// CostConfigStore loads the cost configuration. Read-only from the engine's
// perspective; a pricing pass works on a snapshot of these entries.
type CostConfigStore interface {
	LoadMaterialCosts(ctx context.Context) ([]models.CostEntry, error)
	LoadElectricityCosts(ctx context.Context) ([]models.CostEntry, error)
	LoadBusinessCosts(ctx context.Context) ([]models.CostEntry, error)
}

// QuoteStore persists and retrieves priced quotes.
type QuoteStore interface {
	SaveQuote(ctx context.Context, quote *models.Quote) (string, error)
	LoadQuote(ctx context.Context, id string) (*models.Quote, error)
}

// Store is the full storage capability set. The local (SQLite) and remote
// (Postgres) implementations are interchangeable; callers depend only on
// this interface.
type Store interface {
	CatalogAccessor
	CostConfigStore
	QuoteStore
}
