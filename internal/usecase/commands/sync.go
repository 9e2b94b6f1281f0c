package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"orderflow/internal/domain/order"
	"orderflow/internal/pkg/cache"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/tags"
	"orderflow/internal/usecase/queries"
	"orderflow/internal/usecase/shared"
)

// webhookOrder is the typed slice of the platform's order webhook payload.
// Unknown fields are dropped at this boundary.
type webhookOrder struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Tags              string            `json:"tags"`
	FulfillmentStatus *string           `json:"fulfillment_status"`
	FinancialStatus   string            `json:"financial_status"`
	Currency          string            `json:"currency"`
	TotalPrice        string            `json:"total_price"`
	Email             string            `json:"email"`
	Note              *string           `json:"note"`
	CreatedAt         *time.Time        `json:"created_at"`
	UpdatedAt         *time.Time        `json:"updated_at"`
	CancelledAt       *time.Time        `json:"cancelled_at"`
	ShippingLines     []webhookShipping `json:"shipping_lines"`
	LineItems         []webhookLineItem `json:"line_items"`
}

type webhookShipping struct {
	Title string `json:"title"`
}

type webhookLineItem struct {
	ID                  int64   `json:"id"`
	Title               string  `json:"title"`
	VariantTitle        *string `json:"variant_title"`
	SKU                 *string `json:"sku"`
	ProductID           *int64  `json:"product_id"`
	VariantID           *int64  `json:"variant_id"`
	Quantity            int     `json:"quantity"`
	FulfillableQuantity int     `json:"fulfillable_quantity"`
	Price               string  `json:"price"`
}

type SyncCommands interface {
	IngestOrderWebhook(ctx context.Context, shopDomain, topic string, payload []byte) error
}

type syncUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache *cache.Cache
}

func NewSyncUseCase(uow shared.UnitOfWork, c *cache.Cache) SyncCommands {
	return &syncUseCaseImpl{uow: uow, cache: c}
}

// IngestOrderWebhook mirrors one platform order payload into the local
// store. Cancellation payloads additionally release any reserves in the
// same transaction.
func (u *syncUseCaseImpl) IngestOrderWebhook(ctx context.Context, shopDomain, topic string, payload []byte) error {
	var wo webhookOrder
	if err := json.Unmarshal(payload, &wo); err != nil {
		return errs.MarkAs(errs.Wrap(err, "decode webhook payload"), ErrInvalidPayload)
	}
	if wo.ID == 0 {
		return ErrInvalidPayload
	}

	o, items := toLocalOrder(shopDomain, &wo)
	ref := o.Ref()
	cancelled := wo.CancelledAt != nil || topic == "orders/cancelled"

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Upsert(ctx, tx.DB(), o); err != nil {
			return err
		}
		if err := tx.Orders().ReplaceLineItems(ctx, tx.DB(), ref, items); err != nil {
			return err
		}

		if cancelled {
			if err := tx.Orders().MarkCancelled(ctx, tx.DB(), ref); err != nil {
				return err
			}
			if _, err := releaseForCancellation(ctx, tx, ref); err != nil {
				return err
			}
		}

		return tx.Webhooks().InsertLog(ctx, tx.DB(), shopDomain, topic, ref.OrderID)
	})
	if err != nil {
		return err
	}

	u.cache.InvalidateTag(queries.OrdersCacheTag(shopDomain))
	return nil
}

func toLocalOrder(shopDomain string, wo *webhookOrder) (*order.Order, []order.LineItem) {
	o := &order.Order{
		ShopDomain:      shopDomain,
		OrderID:         strconv.FormatInt(wo.ID, 10),
		OrderName:       wo.Name,
		Tags:            tags.Serialize(tags.Normalize(tags.Parse(wo.Tags))),
		FinancialStatus: wo.FinancialStatus,
		Currency:        wo.Currency,
		Total:           wo.TotalPrice,
		CustomerEmail:   wo.Email,
		CreatedAt:       wo.CreatedAt,
		UpdatedAt:       wo.UpdatedAt,
		CancelledAt:     wo.CancelledAt,
	}
	if wo.FulfillmentStatus != nil {
		o.FulfillmentStatus = *wo.FulfillmentStatus
	}
	if wo.Note != nil {
		o.Note = *wo.Note
	}
	if len(wo.ShippingLines) > 0 {
		o.ShippingMethod = wo.ShippingLines[0].Title
	}
	if wo.CancelledAt != nil {
		labels := tags.Parse(o.Tags)
		if next, changed := tags.Add(labels, tags.Cancelled); changed {
			o.Tags = tags.Serialize(next)
		}
	}

	items := make([]order.LineItem, 0, len(wo.LineItems))
	for _, li := range wo.LineItems {
		item := order.LineItem{
			ShopDomain:          shopDomain,
			OrderID:             o.OrderID,
			LineID:              strconv.FormatInt(li.ID, 10),
			Title:               li.Title,
			Quantity:            li.Quantity,
			FulfillableQuantity: li.FulfillableQuantity,
			UnitPrice:           li.Price,
			Currency:            wo.Currency,
		}
		if li.VariantTitle != nil {
			item.VariantTitle = *li.VariantTitle
		}
		if li.SKU != nil {
			item.SKU = *li.SKU
		}
		if li.ProductID != nil {
			item.ProductID = strconv.FormatInt(*li.ProductID, 10)
		}
		if li.VariantID != nil {
			item.VariantID = strconv.FormatInt(*li.VariantID, 10)
		}
		items = append(items, item)
	}
	return o, items
}
