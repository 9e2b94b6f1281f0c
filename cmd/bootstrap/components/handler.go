package components

import (
	"orderflow/internal/handler"
	"orderflow/internal/handler/api"
	"orderflow/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewOrderHandler,
		api.NewInventoryHandler,
		api.NewScanHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	order *api.OrderHandler,
	inventory *api.InventoryHandler,
	scan *api.ScanHandler,
	webhook *api.WebhookHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:      auth,
		Order:     order,
		Inventory: inventory,
		Scan:      scan,
		Webhook:   webhook,
	}
}
