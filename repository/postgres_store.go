package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stitchquote/errs"
	"stitchquote/logging"
	"stitchquote/models"
)

// PostgresStore is the remote cloud backend. Semantics mirror SQLiteStore
// exactly; only placeholder syntax and upsert dialect differ.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store over an already-opened Postgres connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Ensure PostgresStore implements Store
var _ Store = (*PostgresStore)(nil)

// Lookup resolves a product by its full identity.
func (s *PostgresStore) Lookup(ctx context.Context, supplier, styleNo, colour, size string) (*models.ProductRef, error) {
	query := `
		SELECT supplier, style_no, colour, size, price
		FROM products
		WHERE supplier = $1 AND style_no = $2 AND colour = $3 AND size = $4
		LIMIT 1
	`
	return scanProduct(s.db.QueryRowContext(ctx, query, supplier, styleNo, colour, size),
		fmt.Sprintf("%s|%s|%s|%s", supplier, styleNo, colour, size))
}

// ListUniqueValues returns the distinct values of a whitelisted catalog column.
func (s *PostgresStore) ListUniqueValues(ctx context.Context, column string) ([]string, error) {
	if !filterableColumns[column] {
		return nil, errs.Newf(errs.TypeInput, "column %q is not filterable", column)
	}
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM products WHERE %s IS NOT NULL AND %s != '' ORDER BY %s`,
		column, column, column, column)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Persistence("failed to query unique values", err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

// ReplaceCatalog replaces the whole product catalog in one transaction.
func (s *PostgresStore) ReplaceCatalog(ctx context.Context, products []models.ProductRef) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errs.Persistence("failed to begin catalog transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return 0, errs.Persistence("failed to clear catalog", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (supplier, style_no, colour, size, price)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return 0, errs.Persistence("failed to prepare catalog insert", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.Supplier, p.StyleNo, p.Colour, p.Size, p.BasePrice.String()); err != nil {
			return 0, errs.Wrapf(errs.TypePersistence, err, "failed to insert product %s", p.Key())
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, errs.Persistence("failed to commit catalog replace", err)
	}
	logging.Infof("✓ Catalog replaced: %d products (postgres)", inserted)
	return inserted, nil
}

// LoadMaterialCosts loads all material cost entries.
func (s *PostgresStore) LoadMaterialCosts(ctx context.Context) ([]models.CostEntry, error) {
	query := `
		SELECT material_type, material_name, cost_per_unit, unit_measurement, unit_value, logo_size, cost_per_logo
		FROM material_costs
		ORDER BY material_type, material_name, logo_size
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Persistence("failed to query material costs", err)
	}
	defer rows.Close()
	return scanMaterialCosts(rows)
}

// LoadElectricityCosts loads all electricity cost entries.
func (s *PostgresStore) LoadElectricityCosts(ctx context.Context) ([]models.CostEntry, error) {
	query := `
		SELECT process_type, process_name, avg_time_min, cost_per_kwh, machine_watts, usage_w, cost_per_run
		FROM electricity_costs
		ORDER BY process_type, process_name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Persistence("failed to query electricity costs", err)
	}
	defer rows.Close()
	return scanElectricityCosts(rows)
}

// LoadBusinessCosts loads all business cost entries.
func (s *PostgresStore) LoadBusinessCosts(ctx context.Context) ([]models.CostEntry, error) {
	query := `
		SELECT category_id, name, cost_value, cost_type, date_incurred, recurring_period, lifetime_units
		FROM business_costs
		ORDER BY category_id, name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Persistence("failed to query business costs", err)
	}
	defer rows.Close()
	return scanBusinessCosts(rows)
}

// SaveQuote persists a quote, replacing any prior record with the same ID.
func (s *PostgresStore) SaveQuote(ctx context.Context, quote *models.Quote) (string, error) {
	if quote == nil || quote.ID == "" {
		return "", errs.Input("quote must carry an id before saving")
	}

	lines, err := marshalQuoteLines(quote.Lines)
	if err != nil {
		return "", err
	}
	policy, err := marshalPolicy(quote.Policy)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO quotes (id, created_at, status, subtotal, total_cost, total_revenue, margin_percent, policy, lines)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			status = EXCLUDED.status,
			subtotal = EXCLUDED.subtotal,
			total_cost = EXCLUDED.total_cost,
			total_revenue = EXCLUDED.total_revenue,
			margin_percent = EXCLUDED.margin_percent,
			policy = EXCLUDED.policy,
			lines = EXCLUDED.lines
	`
	_, err = s.db.ExecContext(ctx, query,
		quote.ID,
		quote.CreatedAt.UTC().Format(time.RFC3339Nano),
		quote.Status,
		quote.Subtotal.String(),
		quote.TotalCost.String(),
		quote.TotalRevenue.String(),
		quote.MarginPercent.String(),
		policy,
		lines,
	)
	if err != nil {
		return "", errs.Wrapf(errs.TypePersistence, err, "failed to save quote %s", quote.ID)
	}
	return quote.ID, nil
}

// LoadQuote retrieves a quote by ID.
func (s *PostgresStore) LoadQuote(ctx context.Context, id string) (*models.Quote, error) {
	query := `
		SELECT id, created_at, status, subtotal, total_cost, total_revenue, margin_percent, policy, lines
		FROM quotes
		WHERE id = $1
	`
	return scanQuote(s.db.QueryRowContext(ctx, query, id), id)
}
