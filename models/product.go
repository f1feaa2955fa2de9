package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductRef represents one supplier catalog row. Identity is
// (supplier, styleNo, colour, size); rows are immutable once loaded.
type ProductRef struct {
	Supplier  string          `json:"supplier"`
	StyleNo   string          `json:"styleNo"`
	Colour    string          `json:"colour"`
	Size      string          `json:"size"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

// Key returns the catalog identity key for the product.
func (p ProductRef) Key() string {
	return strings.Join([]string{p.Supplier, p.StyleNo, p.Colour, p.Size}, "|")
}

// Valid reports whether the row carries the minimum identity and a
// non-negative price.
func (p ProductRef) Valid() bool {
	if strings.TrimSpace(p.Supplier) == "" || strings.TrimSpace(p.StyleNo) == "" {
		return false
	}
	return !p.BasePrice.IsNegative()
}
