package bootstrap

import (
	"orderflow/internal/infra/shopify"
	"orderflow/internal/usecase/commands"

	"go.uber.org/fx"
)

var ShopifyModule = fx.Module("shopify",
	fx.Provide(
		fx.Annotate(
			shopify.NewClient,
			fx.As(new(commands.PlatformActions)),
			fx.As(new(commands.CatalogSource)),
		),
	),
)
