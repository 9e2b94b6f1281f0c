package repository

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/domain/order"
	"orderflow/internal/domain/scan"
	"orderflow/internal/domain/workflow"
	"orderflow/internal/infra"
	"orderflow/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type ScanRepository struct{}

func NewScanRepository() *ScanRepository {
	return &ScanRepository{}
}

// UpsertToken stores a fresh token hash for the order, replacing any previous
// one. Replacement resets used_at, so reissuing revives a consumed token slot.
func (r *ScanRepository) UpsertToken(ctx context.Context, tx db.DBTX, t scan.Token) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO scan_tokens (shop_domain, order_id, token_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (shop_domain, order_id) DO UPDATE SET
			token_hash = EXCLUDED.token_hash,
			created_at = now(),
			used_at = NULL`,
		t.ShopDomain, t.OrderID, t.TokenHash); err != nil {
		return infra.WrapRepoErr("failed to upsert scan token", err)
	}
	return nil
}

func (r *ScanRepository) FindByHash(ctx context.Context, tx db.DBTX, tokenHash string) (*scan.Token, error) {
	var t scan.Token
	err := tx.QueryRow(ctx, `
		SELECT shop_domain, order_id, token_hash, created_at, used_at
		FROM scan_tokens
		WHERE token_hash = $1`,
		tokenHash).Scan(&t.ShopDomain, &t.OrderID, &t.TokenHash, &t.CreatedAt, &t.UsedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find scan token", err)
	}
	return &t, nil
}

func (r *ScanRepository) MarkUsed(ctx context.Context, tx db.DBTX, tokenHash string, at time.Time) error {
	if _, err := tx.Exec(ctx,
		`UPDATE scan_tokens SET used_at = $2 WHERE token_hash = $1`,
		tokenHash, at); err != nil {
		return infra.WrapRepoErr("failed to mark scan token used", err)
	}
	return nil
}

// LockWorkflow reads the workflow row under FOR UPDATE, creating a pending
// row first if none exists. Concurrent scans of the same order queue here.
func (r *ScanRepository) LockWorkflow(ctx context.Context, tx db.DBTX, ref order.Ref) (*workflow.State, error) {
	if _, err := tx.Exec(ctx, `
		INSERT INTO workflow_status (shop_domain, order_id)
		VALUES ($1, $2)
		ON CONFLICT (shop_domain, order_id) DO NOTHING`,
		ref.ShopDomain, ref.OrderID); err != nil {
		return nil, infra.WrapRepoErr("failed to ensure workflow row", err)
	}

	var s workflow.State
	err := tx.QueryRow(ctx, `
		SELECT shop_domain, order_id, status, shipped_at, updated_at
		FROM workflow_status
		WHERE shop_domain = $1 AND order_id = $2
		FOR UPDATE`,
		ref.ShopDomain, ref.OrderID).Scan(
		&s.ShopDomain, &s.OrderID, &s.Status, &s.ShippedAt, &s.UpdatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock workflow row", err)
	}
	return &s, nil
}

func (r *ScanRepository) FindWorkflow(ctx context.Context, tx db.DBTX, ref order.Ref) (*workflow.State, error) {
	var s workflow.State
	err := tx.QueryRow(ctx, `
		SELECT shop_domain, order_id, status, shipped_at, updated_at
		FROM workflow_status
		WHERE shop_domain = $1 AND order_id = $2`,
		ref.ShopDomain, ref.OrderID).Scan(
		&s.ShopDomain, &s.OrderID, &s.Status, &s.ShippedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &workflow.State{
			ShopDomain: ref.ShopDomain,
			OrderID:    ref.OrderID,
			Status:     workflow.StatusPending,
		}, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find workflow row", err)
	}
	return &s, nil
}

func (r *ScanRepository) MarkShipped(ctx context.Context, tx db.DBTX, ref order.Ref, at time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE workflow_status
		SET status = $3, shipped_at = $4, updated_at = now()
		WHERE shop_domain = $1 AND order_id = $2 AND status = $5`,
		ref.ShopDomain, ref.OrderID, workflow.StatusShipped, at, workflow.StatusPending)
	if err != nil {
		return infra.WrapRepoErr("failed to mark workflow shipped", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("workflow already shipped", nil, infra.KindDuplicateKey)
	}
	return nil
}
