package repository

import (
	"context"
	"errors"

	"orderflow/internal/domain/inventory"
	"orderflow/internal/domain/order"
	"orderflow/internal/infra"
	"orderflow/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// EnsureStock creates the stock row if it does not exist yet, leaving an
// existing quantity alone.
func (r *InventoryRepository) EnsureStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO inventory_stock (shop_domain, variant_id, quantity)
		VALUES ($1, $2, 0)
		ON CONFLICT (shop_domain, variant_id) DO NOTHING`,
		shopDomain, variantID); err != nil {
		return infra.WrapRepoErr("failed to ensure stock row", err)
	}
	return nil
}

// LockStock reads the stock row under FOR UPDATE, creating it first if
// needed, so every stock mutation in the transaction sees a stable quantity.
func (r *InventoryRepository) LockStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string) (*inventory.Stock, error) {
	if err := r.EnsureStock(ctx, tx, shopDomain, variantID); err != nil {
		return nil, err
	}
	var s inventory.Stock
	err := tx.QueryRow(ctx, `
		SELECT shop_domain, variant_id, quantity, updated_at
		FROM inventory_stock
		WHERE shop_domain = $1 AND variant_id = $2
		FOR UPDATE`,
		shopDomain, variantID).Scan(&s.ShopDomain, &s.VariantID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock stock row", err)
	}
	return &s, nil
}

// AdjustStock applies a signed delta with a floor of zero and returns the
// resulting quantity.
func (r *InventoryRepository) AdjustStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string, delta int) (int, error) {
	var quantity int
	err := tx.QueryRow(ctx, `
		UPDATE inventory_stock
		SET quantity = greatest(quantity + $3, 0), updated_at = now()
		WHERE shop_domain = $1 AND variant_id = $2
		RETURNING quantity`,
		shopDomain, variantID, delta).Scan(&quantity)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to adjust stock", err)
	}
	return quantity, nil
}

func (r *InventoryRepository) SetStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string, quantity int) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO inventory_stock (shop_domain, variant_id, quantity)
		VALUES ($1, $2, greatest($3, 0))
		ON CONFLICT (shop_domain, variant_id) DO UPDATE SET
			quantity = greatest(EXCLUDED.quantity, 0),
			updated_at = now()`,
		shopDomain, variantID, quantity); err != nil {
		return infra.WrapRepoErr("failed to set stock", err)
	}
	return nil
}

func (r *InventoryRepository) GetStock(ctx context.Context, tx db.DBTX, shopDomain, variantID string) (*inventory.Stock, error) {
	var s inventory.Stock
	err := tx.QueryRow(ctx, `
		SELECT shop_domain, variant_id, quantity, updated_at
		FROM inventory_stock
		WHERE shop_domain = $1 AND variant_id = $2`,
		shopDomain, variantID).Scan(&s.ShopDomain, &s.VariantID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get stock", err)
	}
	return &s, nil
}

// InsertMove appends one ledger row. A second insert for the same
// (shop, order, variant, reason) resolves against ux_inventory_move_once as
// DO NOTHING and reports alreadyRecorded, which is the idempotency signal the
// deduction path keys on. The conflict never raises, so the surrounding
// transaction stays usable for the remaining variants.
func (r *InventoryRepository) InsertMove(ctx context.Context, tx db.DBTX, m inventory.Move) (alreadyRecorded bool, err error) {
	tag, err := tx.Exec(ctx, `
		INSERT INTO inventory_move (shop_domain, order_id, variant_id, reason, delta, applied)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (shop_domain, order_id, variant_id, reason) DO NOTHING`,
		m.ShopDomain, m.OrderID, m.VariantID, m.Reason, m.Delta, m.Applied)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert inventory move", err)
	}
	return tag.RowsAffected() == 0, nil
}

func (r *InventoryRepository) MovesForOrder(ctx context.Context, tx db.DBTX, ref order.Ref) ([]inventory.Move, error) {
	rows, err := tx.Query(ctx, `
		SELECT shop_domain, order_id, variant_id, reason, delta, applied, created_at
		FROM inventory_move
		WHERE shop_domain = $1 AND order_id = $2
		ORDER BY id`,
		ref.ShopDomain, ref.OrderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list inventory moves", err)
	}
	defer rows.Close()

	var moves []inventory.Move
	for rows.Next() {
		var m inventory.Move
		if err := rows.Scan(&m.ShopDomain, &m.OrderID, &m.VariantID, &m.Reason,
			&m.Delta, &m.Applied, &m.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan inventory move", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read inventory moves", err)
	}
	return moves, nil
}

func (r *InventoryRepository) UpsertReserve(ctx context.Context, tx db.DBTX, res inventory.Reserve) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO inventory_reserve (shop_domain, order_id, variant_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (shop_domain, order_id, variant_id) DO UPDATE SET
			quantity = EXCLUDED.quantity`,
		res.ShopDomain, res.OrderID, res.VariantID, res.Quantity); err != nil {
		return infra.WrapRepoErr("failed to upsert reserve", err)
	}
	return nil
}

func (r *InventoryRepository) ReservesForOrder(ctx context.Context, tx db.DBTX, ref order.Ref) ([]inventory.Reserve, error) {
	rows, err := tx.Query(ctx, `
		SELECT shop_domain, order_id, variant_id, quantity, created_at
		FROM inventory_reserve
		WHERE shop_domain = $1 AND order_id = $2
		ORDER BY variant_id`,
		ref.ShopDomain, ref.OrderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reserves", err)
	}
	defer rows.Close()

	var reserves []inventory.Reserve
	for rows.Next() {
		var res inventory.Reserve
		if err := rows.Scan(&res.ShopDomain, &res.OrderID, &res.VariantID,
			&res.Quantity, &res.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reserve", err)
		}
		reserves = append(reserves, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reserves", err)
	}
	return reserves, nil
}

func (r *InventoryRepository) FindReserve(ctx context.Context, tx db.DBTX, ref order.Ref, variantID string) (*inventory.Reserve, error) {
	var res inventory.Reserve
	err := tx.QueryRow(ctx, `
		SELECT shop_domain, order_id, variant_id, quantity, created_at
		FROM inventory_reserve
		WHERE shop_domain = $1 AND order_id = $2 AND variant_id = $3`,
		ref.ShopDomain, ref.OrderID, variantID).Scan(
		&res.ShopDomain, &res.OrderID, &res.VariantID, &res.Quantity, &res.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reserve", err)
	}
	return &res, nil
}

func (r *InventoryRepository) DeleteReserve(ctx context.Context, tx db.DBTX, ref order.Ref, variantID string) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM inventory_reserve
		WHERE shop_domain = $1 AND order_id = $2 AND variant_id = $3`,
		ref.ShopDomain, ref.OrderID, variantID); err != nil {
		return infra.WrapRepoErr("failed to delete reserve", err)
	}
	return nil
}

func (r *InventoryRepository) DeleteReservesForOrder(ctx context.Context, tx db.DBTX, ref order.Ref) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM inventory_reserve
		WHERE shop_domain = $1 AND order_id = $2`,
		ref.ShopDomain, ref.OrderID); err != nil {
		return infra.WrapRepoErr("failed to delete order reserves", err)
	}
	return nil
}
