package readstore

import (
	"context"

	"orderflow/internal/domain/order"
	"orderflow/internal/infra"
	"orderflow/internal/infra/db"
	"orderflow/internal/pkg/tags"
	"orderflow/internal/usecase/queries"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

const listColumns = `order_id, order_name, tags, fulfillment_status,
	financial_status, total, currency, customer_email, created_at`

func (r *OrderReadStore) List(ctx context.Context, shopDomain, search string, limit, offset int) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+listColumns+`
		FROM orders
		WHERE shop_domain = $1
		  AND ($2 = '' OR order_name ILIKE '%' || $2 || '%' OR customer_email ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC NULLS LAST, order_id DESC
		LIMIT $3 OFFSET $4`,
		shopDomain, search, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var result []*queries.OrderListItem
	for rows.Next() {
		var (
			item queries.OrderListItem
			raw  string
		)
		if err := rows.Scan(&item.OrderID, &item.OrderName, &raw,
			&item.FulfillmentStatus, &item.FinancialStatus, &item.Total,
			&item.Currency, &item.CustomerEmail, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		item.Tags = tags.Parse(raw)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order rows", err)
	}
	return result, nil
}

func (r *OrderReadStore) Count(ctx context.Context, shopDomain, search string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM orders
		WHERE shop_domain = $1
		  AND ($2 = '' OR order_name ILIKE '%' || $2 || '%' OR customer_email ILIKE '%' || $2 || '%')`,
		shopDomain, search).Scan(&total)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count orders", err)
	}
	return total, nil
}

func (r *OrderReadStore) FindDetail(ctx context.Context, ref order.Ref) (*queries.OrderView, error) {
	var (
		view queries.OrderView
		raw  string
	)
	err := r.db.QueryRow(ctx, `
		SELECT o.order_id, o.order_name, o.tags, o.fulfillment_status,
			o.financial_status, o.total, o.currency, o.customer_email,
			o.shipping_method, o.note, o.created_at, o.cancelled_at,
			coalesce(w.status, 'pending')
		FROM orders o
		LEFT JOIN workflow_status w
			ON w.shop_domain = o.shop_domain AND w.order_id = o.order_id
		WHERE o.shop_domain = $1 AND o.order_id = $2`,
		ref.ShopDomain, ref.OrderID).Scan(
		&view.OrderID, &view.OrderName, &raw, &view.FulfillmentStatus,
		&view.FinancialStatus, &view.Total, &view.Currency, &view.CustomerEmail,
		&view.ShippingMethod, &view.Note, &view.CreatedAt, &view.CancelledAt,
		&view.WorkflowStatus)
	if err != nil {
		return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
	}
	view.Tags = tags.Parse(raw)

	items, err := r.FindItems(ctx, ref)
	if err != nil {
		return nil, err
	}
	view.Items = items
	return &view, nil
}

func (r *OrderReadStore) FindItems(ctx context.Context, ref order.Ref) ([]queries.OrderItemView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT line_id, title, variant_title, sku, variant_id, quantity,
			fulfillable_quantity, unit_price
		FROM order_line_items
		WHERE shop_domain = $1 AND order_id = $2
		ORDER BY line_id`,
		ref.ShopDomain, ref.OrderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}
	defer rows.Close()

	items := make([]queries.OrderItemView, 0)
	for rows.Next() {
		var it queries.OrderItemView
		if err := rows.Scan(&it.LineID, &it.Title, &it.VariantTitle, &it.SKU,
			&it.VariantID, &it.Quantity, &it.FulfillableQuantity, &it.UnitPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}
	return items, nil
}

// Summary counts lifecycle labels with whole-label matching on the
// comma-joined set, so "Complete" does not match a "Completely Custom" tag.
func (r *OrderReadStore) Summary(ctx context.Context, shopDomain string) (*queries.ShopSummary, error) {
	var s queries.ShopSummary
	err := r.db.QueryRow(ctx, `
		WITH labelled AS (
			SELECT cancelled_at,
				',' || replace(lower(tags), ' ', '') || ',' AS label_csv
			FROM orders
			WHERE shop_domain = $1
		)
		SELECT count(*),
			count(*) FILTER (WHERE label_csv LIKE '%,processing,%'),
			count(*) FILTER (WHERE label_csv LIKE '%,shipped,%'),
			count(*) FILTER (WHERE label_csv LIKE '%,complete,%'),
			count(*) FILTER (WHERE cancelled_at IS NOT NULL OR label_csv LIKE '%,cancelled,%')
		FROM labelled`,
		shopDomain).Scan(
		&s.Orders, &s.Processing, &s.Shipped, &s.Complete, &s.Cancelled)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to summarize orders", err)
	}
	return &s, nil
}
