package repository

import (
	"context"

	"orderflow/internal/infra"
	"orderflow/internal/infra/db"
)

type WebhookRepository struct{}

func NewWebhookRepository() *WebhookRepository {
	return &WebhookRepository{}
}

func (r *WebhookRepository) InsertLog(ctx context.Context, tx db.DBTX, shopDomain, topic, orderID string) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO webhook_log (shop_domain, topic, order_id)
		VALUES ($1, $2, $3)`,
		shopDomain, topic, orderID); err != nil {
		return infra.WrapRepoErr("failed to log webhook", err)
	}
	return nil
}
