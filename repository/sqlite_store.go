package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stitchquote/errs"
	"stitchquote/logging"
	"stitchquote/models"
)

// SQLiteStore is the local file-based backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store over an already-opened SQLite database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)

// Lookup resolves a product by its full identity.
func (s *SQLiteStore) Lookup(ctx context.Context, supplier, styleNo, colour, size string) (*models.ProductRef, error) {
	query := `
		SELECT supplier, style_no, colour, size, price
		FROM products
		WHERE supplier = ? AND style_no = ? AND colour = ? AND size = ?
		LIMIT 1
	`
	return scanProduct(s.db.QueryRowContext(ctx, query, supplier, styleNo, colour, size),
		fmt.Sprintf("%s|%s|%s|%s", supplier, styleNo, colour, size))
}

// ListUniqueValues returns the distinct values of a catalog column, used to
// populate filter choices. Column names outside the whitelist are rejected.
func (s *SQLiteStore) ListUniqueValues(ctx context.Context, column string) ([]string, error) {
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
func (s *SQLiteStore) ReplaceCatalog(ctx context.Context, products []models.ProductRef) (int, error) {
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
		VALUES (?, ?, ?, ?, ?)
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
	logging.Infof("✓ Catalog replaced: %d products (sqlite)", inserted)
	return inserted, nil
}

// LoadMaterialCosts loads all material cost entries.
func (s *SQLiteStore) LoadMaterialCosts(ctx context.Context) ([]models.CostEntry, error) {
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
func (s *SQLiteStore) LoadElectricityCosts(ctx context.Context) ([]models.CostEntry, error) {
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
func (s *SQLiteStore) LoadBusinessCosts(ctx context.Context) ([]models.CostEntry, error) {
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

// SaveQuote persists a quote. Saving the same quote ID again replaces the
// stored record, so a failed save can be retried without re-pricing.
func (s *SQLiteStore) SaveQuote(ctx context.Context, quote *models.Quote) (string, error) {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			status = excluded.status,
			subtotal = excluded.subtotal,
			total_cost = excluded.total_cost,
			total_revenue = excluded.total_revenue,
			margin_percent = excluded.margin_percent,
			policy = excluded.policy,
			lines = excluded.lines
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
func (s *SQLiteStore) LoadQuote(ctx context.Context, id string) (*models.Quote, error) {
	query := `
		SELECT id, created_at, status, subtotal, total_cost, total_revenue, margin_percent, policy, lines
		FROM quotes
		WHERE id = ?
	`
	return scanQuote(s.db.QueryRowContext(ctx, query, id), id)
}

// scanProduct scans one catalog row.
func scanProduct(row *sql.Row, key string) (*models.ProductRef, error) {
	var p models.ProductRef
	var price sql.NullString
	err := row.Scan(&p.Supplier, &p.StyleNo, &p.Colour, &p.Size, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("product", key)
	}
	if err != nil {
		return nil, errs.Persistence("failed to scan product", err)
	}
	if p.BasePrice, err = decFromText(price); err != nil {
		return nil, err
	}
	return &p, nil
}

// collectStrings drains a single-column result set.
func collectStrings(rows *sql.Rows) ([]string, error) {
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errs.Persistence("failed to scan value", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to iterate values", err)
	}
	return values, nil
}

// scanMaterialCosts drains a material cost result set.
func scanMaterialCosts(rows *sql.Rows) ([]models.CostEntry, error) {
	var entries []models.CostEntry
	for rows.Next() {
		var m models.MaterialCost
		var costPerUnit, unitValue, costPerLogo sql.NullString
		var name, measurement sql.NullString
		if err := rows.Scan(&m.MaterialType, &name, &costPerUnit, &measurement, &unitValue, &m.LogoSize, &costPerLogo); err != nil {
			return nil, errs.Persistence("failed to scan material cost", err)
		}
		m.MaterialName = name.String
		m.UnitMeasurement = measurement.String
		var err error
		if m.CostPerUnit, err = decFromText(costPerUnit); err != nil {
			return nil, err
		}
		if m.UnitValue, err = decFromText(unitValue); err != nil {
			return nil, err
		}
		if m.CostPerLogo, err = decFromText(costPerLogo); err != nil {
			return nil, err
		}
		entries = append(entries, models.NewMaterialEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to iterate material costs", err)
	}
	return entries, nil
}

// scanElectricityCosts drains an electricity cost result set.
func scanElectricityCosts(rows *sql.Rows) ([]models.CostEntry, error) {
	var entries []models.CostEntry
	for rows.Next() {
		var e models.ElectricityCost
		var avgTime, costPerKwh, watts, usageW, costPerRun sql.NullString
		if err := rows.Scan(&e.ProcessType, &e.ProcessName, &avgTime, &costPerKwh, &watts, &usageW, &costPerRun); err != nil {
			return nil, errs.Persistence("failed to scan electricity cost", err)
		}
		var err error
		if e.AvgTimeMinutes, err = decFromText(avgTime); err != nil {
			return nil, err
		}
		if e.CostPerKwh, err = decFromText(costPerKwh); err != nil {
			return nil, err
		}
		if e.MachineWatts, err = decFromText(watts); err != nil {
			return nil, err
		}
		if e.UsageW, err = decFromText(usageW); err != nil {
			return nil, err
		}
		if e.CostPerRun, err = decFromText(costPerRun); err != nil {
			return nil, err
		}
		entries = append(entries, models.NewElectricityEntry(e))
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to iterate electricity costs", err)
	}
	return entries, nil
}

// scanBusinessCosts drains a business cost result set.
func scanBusinessCosts(rows *sql.Rows) ([]models.CostEntry, error) {
	var entries []models.CostEntry
	for rows.Next() {
		var b models.BusinessCost
		var costValue sql.NullString
		var dateIncurred, recurringPeriod sql.NullString
		var lifetimeUnits sql.NullInt64
		if err := rows.Scan(&b.CategoryID, &b.Name, &costValue, &b.CostType, &dateIncurred, &recurringPeriod, &lifetimeUnits); err != nil {
			return nil, errs.Persistence("failed to scan business cost", err)
		}
		b.DateIncurred = dateIncurred.String
		b.RecurringPeriod = recurringPeriod.String
		b.LifetimeUnits = lifetimeUnits.Int64
		var err error
		if b.CostValue, err = decFromText(costValue); err != nil {
			return nil, err
		}
		entries = append(entries, models.NewBusinessEntry(b))
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("failed to iterate business costs", err)
	}
	return entries, nil
}

// scanQuote scans one stored quote row.
func scanQuote(row *sql.Row, id string) (*models.Quote, error) {
	var q models.Quote
	var createdAt string
	var subtotal, totalCost, totalRevenue, marginPercent sql.NullString
	var policy, lines string

	err := row.Scan(&q.ID, &createdAt, &q.Status, &subtotal, &totalCost, &totalRevenue, &marginPercent, &policy, &lines)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("quote", id)
	}
	if err != nil {
		return nil, errs.Persistence("failed to scan quote", err)
	}

	if q.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, errs.Wrapf(errs.TypePersistence, err, "malformed created_at %q", createdAt)
	}
	if q.Subtotal, err = decFromText(subtotal); err != nil {
		return nil, err
	}
	if q.TotalCost, err = decFromText(totalCost); err != nil {
		return nil, err
	}
	if q.TotalRevenue, err = decFromText(totalRevenue); err != nil {
		return nil, err
	}
	if q.MarginPercent, err = decFromText(marginPercent); err != nil {
		return nil, err
	}
	if q.Policy, err = unmarshalPolicy(policy); err != nil {
		return nil, err
	}
	if q.Lines, err = unmarshalQuoteLines(lines); err != nil {
		return nil, err
	}
	return &q, nil
}
