// Package order models the locally mirrored platform order. Fields mirrored
// from the platform (statuses, timestamps) are only written by webhook/sync
// ingestion; local tag mutations touch the label set alone.
package order

import (
	"time"
)

// Ref identifies an order across the whole system.
type Ref struct {
	ShopDomain string
	OrderID    string
}

type Order struct {
	ShopDomain        string
	OrderID           string
	OrderName         string
	Tags              string
	FulfillmentStatus string
	FinancialStatus   string
	Currency          string
	Total             string
	CustomerEmail     string
	ShippingMethod    string
	Note              string
	CreatedAt         *time.Time
	UpdatedAt         *time.Time
	CancelledAt       *time.Time
	// SyncedAt is the last platform mirror write; local tag edits must not
	// advance it, or local edits would masquerade as platform edits.
	SyncedAt time.Time
}

func (o *Order) Ref() Ref {
	return Ref{ShopDomain: o.ShopDomain, OrderID: o.OrderID}
}

func (o *Order) IsCancelled() bool {
	return o.CancelledAt != nil
}

type LineItem struct {
	ShopDomain          string
	OrderID             string
	LineID              string
	Title               string
	VariantTitle        string
	SKU                 string
	ProductID           string
	VariantID           string
	Quantity            int
	FulfillableQuantity int
	UnitPrice           string
	Currency            string
}
