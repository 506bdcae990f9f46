// Package pricing computes order totals. All amounts are integer minor
// currency units (cents); the only fractional step is the tax
// multiplication, rounded half-up at the cent.
package pricing

import "github.com/shopspring/decimal"

const (
	// Orders above this subtotal ship free.
	FreeShippingThresholdCents int64 = 5000

	// Flat shipping rate below the threshold.
	FlatShippingCents int64 = 499

	// Fixed sales tax rate applied to the subtotal.
	TaxRate = "0.08"
)

type LineItem struct {
	PriceCents int64
	Quantity   int
}

type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// Subtotal sums price x quantity over the given lines.
func Subtotal(items []LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.PriceCents * int64(it.Quantity)
	}
	return sum
}

// Shipping is zero above the free-shipping threshold, the flat rate
// otherwise. An empty cart ships for nothing.
func Shipping(subtotalCents int64) int64 {
	if subtotalCents == 0 || subtotalCents > FreeShippingThresholdCents {
		return 0
	}
	return FlatShippingCents
}

// Tax applies the fixed rate to the subtotal, rounding half-up at the
// cent.
func Tax(subtotalCents int64) int64 {
	rate := decimal.RequireFromString(TaxRate)
	return decimal.NewFromInt(subtotalCents).Mul(rate).Round(0).IntPart()
}

// Calculate computes all totals for a set of line items.
func Calculate(items []LineItem) Totals {
	subtotal := Subtotal(items)
	shipping := Shipping(subtotal)
	tax := Tax(subtotal)
	return Totals{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TaxCents:      tax,
		TotalCents:    subtotal + shipping + tax,
	}
}
