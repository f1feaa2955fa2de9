package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	"stitchquote/errs"
	"stitchquote/models"
)

// Decimals are persisted as TEXT on both backends so values round-trip
// without binary float drift, and quote lines are persisted as one JSON
// document so NULL/absent-value handling is identical everywhere.

// decFromText parses a stored decimal, treating NULL/empty as zero.
func decFromText(s sql.NullString) (decimal.Decimal, error) {
	if !s.Valid || s.String == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return decimal.Zero, errs.Wrapf(errs.TypePersistence, err, "malformed decimal %q", s.String)
	}
	return d, nil
}

// marshalQuoteLines serializes quote lines canonically for storage.
func marshalQuoteLines(lines []models.QuoteLine) (string, error) {
	data, err := json.Marshal(lines)
	if err != nil {
		return "", errs.Wrap(errs.TypePersistence, "failed to encode quote lines", err)
	}
	return string(data), nil
}

// unmarshalQuoteLines restores quote lines from storage.
func unmarshalQuoteLines(payload string) ([]models.QuoteLine, error) {
	var lines []models.QuoteLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, errs.Wrap(errs.TypePersistence, "failed to decode quote lines", err)
	}
	return lines, nil
}

// marshalPolicy serializes the pricing policy for storage.
func marshalPolicy(policy models.PricingPolicy) (string, error) {
	data, err := json.Marshal(policy)
	if err != nil {
		return "", errs.Wrap(errs.TypePersistence, "failed to encode pricing policy", err)
	}
	return string(data), nil
}

// unmarshalPolicy restores the pricing policy from storage.
func unmarshalPolicy(payload string) (models.PricingPolicy, error) {
	var policy models.PricingPolicy
	if payload == "" {
		return policy, nil
	}
	if err := json.Unmarshal([]byte(payload), &policy); err != nil {
		return policy, errs.Wrap(errs.TypePersistence, "failed to decode pricing policy", err)
	}
	return policy, nil
}
