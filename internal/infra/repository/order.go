package repository

import (
	"context"

	"orderflow/internal/domain/inventory"
	"orderflow/internal/domain/order"
	"orderflow/internal/infra"
	"orderflow/internal/infra/db"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const orderColumns = `shop_domain, order_id, order_name, tags, fulfillment_status,
	financial_status, currency, total, customer_email, shipping_method, note,
	created_at, updated_at, cancelled_at, synced_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ShopDomain, &o.OrderID, &o.OrderName, &o.Tags, &o.FulfillmentStatus,
		&o.FinancialStatus, &o.Currency, &o.Total, &o.CustomerEmail,
		&o.ShippingMethod, &o.Note, &o.CreatedAt, &o.UpdatedAt, &o.CancelledAt,
		&o.SyncedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Find(ctx context.Context, tx db.DBTX, ref order.Ref) (*order.Order, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE shop_domain = $1 AND order_id = $2`,
		ref.ShopDomain, ref.OrderID)
	o, err := scanOrder(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return o, nil
}

// FindForUpdate locks the order row for the rest of the transaction so
// concurrent tag edits on the same order serialize.
func (r *OrderRepository) FindForUpdate(ctx context.Context, tx db.DBTX, ref order.Ref) (*order.Order, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE shop_domain = $1 AND order_id = $2 FOR UPDATE`,
		ref.ShopDomain, ref.OrderID)
	o, err := scanOrder(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock order", err)
	}
	return o, nil
}

// UpdateTags writes the serialized label set. synced_at stays untouched so
// local edits stay distinguishable from platform syncs.
func (r *OrderRepository) UpdateTags(ctx context.Context, tx db.DBTX, ref order.Ref, serialized string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE orders SET tags = $3 WHERE shop_domain = $1 AND order_id = $2`,
		ref.ShopDomain, ref.OrderID, serialized)
	if err != nil {
		return infra.WrapRepoErr("failed to update order tags", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found for tag update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) MarkCancelled(ctx context.Context, tx db.DBTX, ref order.Ref) error {
	if _, err := tx.Exec(ctx,
		`UPDATE orders SET cancelled_at = now() WHERE shop_domain = $1 AND order_id = $2 AND cancelled_at IS NULL`,
		ref.ShopDomain, ref.OrderID); err != nil {
		return infra.WrapRepoErr("failed to mark order cancelled", err)
	}
	return nil
}

// Upsert mirrors a platform order payload. This is the only write path that
// advances synced_at.
func (r *OrderRepository) Upsert(ctx context.Context, tx db.DBTX, o *order.Order) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO orders (shop_domain, order_id, order_name, tags,
			fulfillment_status, financial_status, currency, total,
			customer_email, shipping_method, note, created_at, updated_at,
			cancelled_at, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
		ON CONFLICT (shop_domain, order_id) DO UPDATE SET
			order_name = EXCLUDED.order_name,
			tags = EXCLUDED.tags,
			fulfillment_status = EXCLUDED.fulfillment_status,
			financial_status = EXCLUDED.financial_status,
			currency = EXCLUDED.currency,
			total = EXCLUDED.total,
			customer_email = EXCLUDED.customer_email,
			shipping_method = EXCLUDED.shipping_method,
			note = EXCLUDED.note,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			cancelled_at = EXCLUDED.cancelled_at,
			synced_at = now()`,
		o.ShopDomain, o.OrderID, o.OrderName, o.Tags, o.FulfillmentStatus,
		o.FinancialStatus, o.Currency, o.Total, o.CustomerEmail,
		o.ShippingMethod, o.Note, o.CreatedAt, o.UpdatedAt, o.CancelledAt)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert order", err)
	}
	return nil
}

func (r *OrderRepository) ReplaceLineItems(ctx context.Context, tx db.DBTX, ref order.Ref, items []order.LineItem) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM order_line_items WHERE shop_domain = $1 AND order_id = $2`,
		ref.ShopDomain, ref.OrderID); err != nil {
		return infra.WrapRepoErr("failed to clear line items", err)
	}
	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_line_items (shop_domain, order_id, line_id, title,
				variant_title, sku, product_id, variant_id, quantity,
				fulfillable_quantity, unit_price, currency)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			ref.ShopDomain, ref.OrderID, it.LineID, it.Title, it.VariantTitle,
			it.SKU, it.ProductID, it.VariantID, it.Quantity,
			it.FulfillableQuantity, it.UnitPrice, it.Currency); err != nil {
			return infra.WrapRepoErr("failed to insert line item", err)
		}
	}
	return nil
}

func (r *OrderRepository) LineItems(ctx context.Context, tx db.DBTX, ref order.Ref) ([]order.LineItem, error) {
	rows, err := tx.Query(ctx, `
		SELECT shop_domain, order_id, line_id, title, variant_title, sku,
			product_id, variant_id, quantity, fulfillable_quantity, unit_price, currency
		FROM order_line_items
		WHERE shop_domain = $1 AND order_id = $2
		ORDER BY line_id`,
		ref.ShopDomain, ref.OrderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list line items", err)
	}
	defer rows.Close()

	var items []order.LineItem
	for rows.Next() {
		var it order.LineItem
		if err := rows.Scan(&it.ShopDomain, &it.OrderID, &it.LineID, &it.Title,
			&it.VariantTitle, &it.SKU, &it.ProductID, &it.VariantID,
			&it.Quantity, &it.FulfillableQuantity, &it.UnitPrice, &it.Currency); err != nil {
			return nil, infra.WrapRepoErr("failed to scan line item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read line items", err)
	}
	return items, nil
}

// SumQuantitiesByVariant folds the order's line items into per-variant demand.
func (r *OrderRepository) SumQuantitiesByVariant(ctx context.Context, tx db.DBTX, ref order.Ref) ([]inventory.Demand, error) {
	items, err := r.LineItems(ctx, tx, ref)
	if err != nil {
		return nil, err
	}
	pairs := make([]inventory.Demand, 0, len(items))
	for _, it := range items {
		pairs = append(pairs, inventory.Demand{VariantID: it.VariantID, Quantity: it.Quantity})
	}
	return inventory.SumDemand(pairs), nil
}
