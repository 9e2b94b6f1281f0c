//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/domain/order"
	"orderflow/internal/pkg/cache"
	"orderflow/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderPayload = `{
	"id": 4001,
	"name": "#1042",
	"tags": "VIP, rush",
	"financial_status": "pending",
	"fulfillment_status": null,
	"currency": "EUR",
	"total_price": "59.90",
	"email": "buyer@example.com",
	"created_at": "2025-05-01T10:00:00Z",
	"updated_at": "2025-05-02T11:30:00Z",
	"shipping_lines": [{"title": "DHL Express"}],
	"line_items": [
		{"id": 9001, "title": "Classic Tee", "variant_id": 777, "quantity": 2,
		 "fulfillable_quantity": 2, "price": "19.95", "sku": "TEE-B-M"},
		{"id": 9002, "title": "Sticker", "variant_id": null, "quantity": 1,
		 "fulfillable_quantity": 1, "price": "2.00"}
	]
}`

func TestIngestOrderWebhookMirrorsOrder(t *testing.T) {
	store := newMemStore()
	uc := commands.NewSyncUseCase(&memUoW{s: store}, cache.New())

	err := uc.IngestOrderWebhook(context.Background(), shop, "orders/updated", []byte(orderPayload))
	require.NoError(t, err)

	ref := order.Ref{ShopDomain: shop, OrderID: "4001"}
	o := store.orders[ref]
	require.NotNil(t, o)
	assert.Equal(t, "#1042", o.OrderName)
	assert.Equal(t, "VIP, Rush", o.Tags)
	assert.Equal(t, "pending", o.FinancialStatus)
	assert.Equal(t, "DHL Express", o.ShippingMethod)
	assert.Equal(t, "buyer@example.com", o.CustomerEmail)

	items := store.items[ref]
	require.Len(t, items, 2)
	assert.Equal(t, "777", items[0].VariantID)
	assert.Equal(t, "", items[1].VariantID)
	assert.Equal(t, "EUR", items[0].Currency)

	assert.Equal(t, []string{shop + "|orders/updated|4001"}, store.webhooks)
}

func TestIngestOrderWebhookCancellationReleasesReserves(t *testing.T) {
	store := newMemStore()
	uc := commands.NewSyncUseCase(&memUoW{s: store}, cache.New())
	store.reserves[[3]string{shop, "4001", "777"}] = reserveRow("4001", "777", 2)
	store.stock[[2]string{shop, "777"}] = 1

	payload := `{"id": 4001, "name": "#1042", "tags": "",
		"cancelled_at": "2025-05-03T08:00:00Z", "currency": "EUR",
		"total_price": "0.00", "line_items": []}`

	err := uc.IngestOrderWebhook(context.Background(), shop, "orders/cancelled", []byte(payload))
	require.NoError(t, err)

	ref := order.Ref{ShopDomain: shop, OrderID: "4001"}
	o := store.orders[ref]
	require.NotNil(t, o)
	assert.Equal(t, "Cancelled", o.Tags)
	require.NotNil(t, o.CancelledAt)
	assert.Equal(t, time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC), o.CancelledAt.UTC())

	assert.Empty(t, store.reserves)
	assert.Equal(t, 3, store.stock[[2]string{shop, "777"}])
}

func TestIngestOrderWebhookRejectsBadPayload(t *testing.T) {
	store := newMemStore()
	uc := commands.NewSyncUseCase(&memUoW{s: store}, cache.New())

	err := uc.IngestOrderWebhook(context.Background(), shop, "orders/updated", []byte("not json"))
	assert.ErrorIs(t, err, commands.ErrInvalidPayload)

	err = uc.IngestOrderWebhook(context.Background(), shop, "orders/updated", []byte(`{"name":"#1"}`))
	assert.ErrorIs(t, err, commands.ErrInvalidPayload)
	assert.Empty(t, store.orders)
}
