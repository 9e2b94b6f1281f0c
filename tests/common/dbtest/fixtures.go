//go:build e2e

// Package dbtest seeds and resets the database for end to end tests.
package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var allTables = []string{
	"webhook_log",
	"workflow_status",
	"scan_tokens",
	"inventory_reserve",
	"inventory_move",
	"inventory_stock",
	"order_line_items",
	"orders",
}

// ResetDB truncates every table so each subtest starts from a clean slate.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range allTables {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedOrder inserts a mirrored order with optional line items expressed as
// (lineID, variantID, quantity) triples.
func SeedOrder(pool *pgxpool.Pool, shopDomain, orderID, orderName, tags string, items ...[3]string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		INSERT INTO orders (shop_domain, order_id, order_name, tags, customer_email, created_at)
		VALUES ($1, $2, $3, $4, 'buyer@example.com', now())`,
		shopDomain, orderID, orderName, tags)
	if err != nil {
		return fmt.Errorf("failed to seed order: %w", err)
	}

	for _, item := range items {
		_, err := pool.Exec(ctx, `
			INSERT INTO order_line_items (shop_domain, order_id, line_id, title, variant_id, quantity, fulfillable_quantity)
			VALUES ($1, $2, $3, 'Seeded Item', $4, $5::int, $5::int)`,
			shopDomain, orderID, item[0], item[1], item[2])
		if err != nil {
			return fmt.Errorf("failed to seed line item: %w", err)
		}
	}
	return nil
}

// SeedStock upserts an on-hand quantity for a variant.
func SeedStock(pool *pgxpool.Pool, shopDomain, variantID string, quantity int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		INSERT INTO inventory_stock (shop_domain, variant_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (shop_domain, variant_id) DO UPDATE SET quantity = excluded.quantity`,
		shopDomain, variantID, quantity)
	if err != nil {
		return fmt.Errorf("failed to seed stock: %w", err)
	}
	return nil
}

// StockQuantity reads back the on-hand quantity for assertions.
func StockQuantity(pool *pgxpool.Pool, shopDomain, variantID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var quantity int
	err := pool.QueryRow(ctx,
		"SELECT quantity FROM inventory_stock WHERE shop_domain = $1 AND variant_id = $2",
		shopDomain, variantID).Scan(&quantity)
	if err != nil {
		return 0, fmt.Errorf("failed to read stock: %w", err)
	}
	return quantity, nil
}

// CountRows counts rows matching a shop and order across any of the ledger tables.
func CountRows(pool *pgxpool.Pool, table, shopDomain, orderID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := pool.QueryRow(ctx,
		"SELECT count(*) FROM "+table+" WHERE shop_domain = $1 AND order_id = $2",
		shopDomain, orderID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s rows: %w", table, err)
	}
	return count, nil
}
