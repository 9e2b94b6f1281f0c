package commands

import (
	"context"

	"orderflow/internal/infra/shopify"
	"orderflow/internal/pkg/errs"
)

var (
	ErrOrderNotFound  = errs.New("order not found")
	ErrMissingLabel   = errs.New("label is required")
	ErrInvalidAction  = errs.New("action must be add or remove")
	ErrOrderLocked    = errs.New("order is locked for reservation changes")
	ErrTokenNotFound  = errs.New("scan token not found")
	ErrEmptyImport    = errs.New("import file has no usable rows")
	ErrStorageFailure = errs.New("storage operation failed")
	ErrInvalidPayload = errs.New("payload is malformed")
)

// PlatformActions is the write side of the order platform. All calls are
// dispatched after commit and their failures never reach the original caller.
type PlatformActions interface {
	FulfillAll(ctx context.Context, shopDomain, orderID string) error
	Unfulfill(ctx context.Context, shopDomain, orderID string) error
	MarkPaid(ctx context.Context, shopDomain, orderID string) error
	CancelOrder(ctx context.Context, shopDomain, orderID, reason string) error
}

// CatalogSource supplies the variant catalog for bulk stock import.
type CatalogSource interface {
	ListCatalog(ctx context.Context, shopDomain string) ([]shopify.CatalogVariant, error)
}

// EffectRunner schedules an external effect off the response path.
type EffectRunner interface {
	Go(name string, fields []any, fn func(ctx context.Context) error)
}

// VariantApplication reports the ledger outcome for one variant.
type VariantApplication struct {
	VariantID string `json:"variant_id"`
	Requested int    `json:"requested"`
	Applied   bool   `json:"applied"`
	Withdrawn int    `json:"withdrawn"`
}

// LedgerResult summarizes one ledger pass over an order.
type LedgerResult struct {
	AppliedCount int                  `json:"applied_count"`
	Variants     []VariantApplication `json:"variants"`
}
