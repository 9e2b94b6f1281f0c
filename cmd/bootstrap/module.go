package bootstrap

import (
	"orderflow/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	ShopifyModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
