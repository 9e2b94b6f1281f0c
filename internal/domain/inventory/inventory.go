// Package inventory holds the warehouse-side domain types: stock rows keyed
// by variant, the append-only move ledger, and reserve rows that park stock
// for toggled-off orders.
package inventory

import (
	"strings"
	"time"
)

// ReasonOrderProcessing marks ledger moves written by the order processing
// deduction. One move per (shop, order, variant, reason) ever exists.
const ReasonOrderProcessing = "ORDER_PROCESSING"

// NormalizeVariantID collapses the two platform spellings of a variant
// reference into one ledger key. Bare numeric ids pass through unchanged;
// gid://shopify/ProductVariant/<id> references reduce to <id>.
func NormalizeVariantID(raw string) string {
	id := strings.TrimSpace(raw)
	const prefix = "gid://shopify/ProductVariant/"
	if rest, ok := strings.CutPrefix(id, prefix); ok {
		return rest
	}
	return id
}

// Stock is the current on-hand quantity for one variant in one shop.
// Quantity never goes below zero; deductions clamp.
type Stock struct {
	ShopDomain string
	VariantID  string
	Quantity   int
	UpdatedAt  time.Time
}

// Move is one row of the append-only ledger. Delta is signed: deductions are
// negative, restorations positive. Applied is false when the row was recorded
// for idempotency but the stock write was skipped.
type Move struct {
	ShopDomain string
	OrderID    string
	VariantID  string
	Reason     string
	Delta      int
	Applied    bool
	CreatedAt  time.Time
}

// Reserve parks the quantity actually withdrawn from stock while an order is
// flagged on hold. Quantity records the withdrawal, not the requested amount,
// so releasing restores stock to exactly where it was.
type Reserve struct {
	ShopDomain string
	OrderID    string
	VariantID  string
	Quantity   int
	CreatedAt  time.Time
}

// Demand is the per-variant quantity an order asks for, summed across line
// items that reference the same variant.
type Demand struct {
	VariantID string
	Quantity  int
}

// SumDemand folds raw (variantID, qty) pairs into per-variant totals,
// normalizing variant ids first. Order of first appearance is preserved.
func SumDemand(pairs []Demand) []Demand {
	totals := make(map[string]int, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, p := range pairs {
		id := NormalizeVariantID(p.VariantID)
		if id == "" || p.Quantity <= 0 {
			continue
		}
		if _, seen := totals[id]; !seen {
			order = append(order, id)
		}
		totals[id] += p.Quantity
	}
	out := make([]Demand, 0, len(order))
	for _, id := range order {
		out = append(out, Demand{VariantID: id, Quantity: totals[id]})
	}
	return out
}

// ClampDelta limits a signed stock delta so the resulting quantity never
// drops below zero. The returned value is the delta actually applied.
func ClampDelta(current, delta int) int {
	if next := current + delta; next < 0 {
		return -current
	}
	return delta
}
