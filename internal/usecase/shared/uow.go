package shared

import (
	"context"
	"time"

	"orderflow/internal/domain/inventory"
	"orderflow/internal/domain/order"
	"orderflow/internal/domain/scan"
	"orderflow/internal/domain/workflow"
	"orderflow/internal/infra/db"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Orders() OrderRepository
	Inventory() InventoryRepository
	Scans() ScanRepository
	Webhooks() WebhookRepository
	DB() db.DBTX
}

type OrderRepository interface {
	Find(ctx context.Context, tx db.DBTX, ref order.Ref) (*order.Order, error)
	FindForUpdate(ctx context.Context, tx db.DBTX, ref order.Ref) (*order.Order, error)
	UpdateTags(ctx context.Context, tx db.DBTX, ref order.Ref, serialized string) error
	MarkCancelled(ctx context.Context, tx db.DBTX, ref order.Ref) error
	Upsert(ctx context.Context, tx db.DBTX, o *order.Order) error
	ReplaceLineItems(ctx context.Context, tx db.DBTX, ref order.Ref, items []order.LineItem) error
	LineItems(ctx context.Context, tx db.DBTX, ref order.Ref) ([]order.LineItem, error)
	SumQuantitiesByVariant(ctx context.Context, tx db.DBTX, ref order.Ref) ([]inventory.Demand, error)
}

type InventoryRepository interface {
	EnsureStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string) error
	LockStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string) (*inventory.Stock, error)
	AdjustStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string, delta int) (int, error)
	SetStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string, quantity int) error
	GetStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string) (*inventory.Stock, error)
	InsertMove(ctx context.Context, tx db.DBTX, m inventory.Move) (alreadyRecorded bool, err error)
	MovesForOrder(ctx context.Context, tx db.DBTX, ref order.Ref) ([]inventory.Move, error)
	UpsertReserve(ctx context.Context, tx db.DBTX, res inventory.Reserve) error
	ReservesForOrder(ctx context.Context, tx db.DBTX, ref order.Ref) ([]inventory.Reserve, error)
	FindReserve(ctx context.Context, tx db.DBTX, ref order.Ref, variantID string) (*inventory.Reserve, error)
	DeleteReserve(ctx context.Context, tx db.DBTX, ref order.Ref, variantID string) error
	DeleteReservesForOrder(ctx context.Context, tx db.DBTX, ref order.Ref) error
}

type ScanRepository interface {
	UpsertToken(ctx context.Context, tx db.DBTX, t scan.Token) error
	FindByHash(ctx context.Context, tx db.DBTX, tokenHash string) (*scan.Token, error)
	MarkUsed(ctx context.Context, tx db.DBTX, tokenHash string, at time.Time) error
	LockWorkflow(ctx context.Context, tx db.DBTX, ref order.Ref) (*workflow.State, error)
	FindWorkflow(ctx context.Context, tx db.DBTX, ref order.Ref) (*workflow.State, error)
	MarkShipped(ctx context.Context, tx db.DBTX, ref order.Ref, at time.Time) error
}

type WebhookRepository interface {
	InsertLog(ctx context.Context, tx db.DBTX, shopDomain, topic, orderID string) error
}
