package services

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/qrdine/qrdine-api/models"
)

// DefaultTaxRate is the GST applied to the order subtotal.
const DefaultTaxRate = 0.16

var ErrNegativeUnitPrice = errors.New("line item resolves to a negative unit price")

// Totals is the aggregate money view of a cart or order. All amounts are
// whole currency units. Total is always Subtotal + Tax.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ConfiguredTaxRate reads TAX_RATE from the environment, falling back to the
// default 16%.
func ConfiguredTaxRate() float64 {
	raw := os.Getenv("TAX_RATE")
	if raw == "" {
		return DefaultTaxRate
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 {
		return DefaultTaxRate
	}
	return rate
}

// UnitPrice is the effective per-unit price of a configured item:
// base price plus the size modifier plus the sum of selected extras.
func UnitPrice(item models.MenuItem, size *models.Size, extras []models.Extra) int64 {
	price := item.Price
	if size != nil {
		price += size.PriceModifier
	}
	for _, extra := range extras {
		price += extra.Price
	}
	return price
}

// LineTotal is the unit price times the quantity. A negative size modifier
// large enough to push the unit price below zero is bad catalog data and is
// reported as an error, never clamped.
func LineTotal(item models.CartItem) (int64, error) {
	unit := UnitPrice(item.MenuItem, item.SelectedSize, item.SelectedExtras)
	if unit < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNegativeUnitPrice, item.MenuItem.Name)
	}
	return unit * int64(item.Quantity), nil
}

// OrderTotals sums line totals and applies tax, rounded half-up to the
// nearest currency unit. An empty item list yields all-zero totals.
func OrderTotals(items []models.CartItem, taxRate float64) (Totals, error) {
	var subtotal int64
	for _, item := range items {
		line, err := LineTotal(item)
		if err != nil {
			return Totals{}, err
		}
		subtotal += line
	}

	tax := int64(math.Round(float64(subtotal) * taxRate))
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}, nil
}
