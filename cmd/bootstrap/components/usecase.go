package components

import (
	"time"

	"orderflow/internal/pkg/cache"
	"orderflow/internal/pkg/clock"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/jwt"
	"orderflow/internal/usecase/commands"
	"orderflow/internal/usecase/queries"
	"orderflow/internal/usecase/shared"

	"go.uber.org/fx"
)

const effectTimeout = 30 * time.Second

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCache,
	NewEffectRunner,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewTagUseCase,
		commands.NewReserveUseCase,
		commands.NewImportUseCase,
		commands.NewSyncUseCase,
		NewScanCommands,
		NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

func NewCache() *cache.Cache {
	return cache.New()
}

func NewEffectRunner() commands.EffectRunner {
	return commands.NewAsyncEffectRunner(effectTimeout)
}

func NewScanCommands(
	u shared.UnitOfWork,
	platform commands.PlatformActions,
	effects commands.EffectRunner,
	c *cache.Cache,
	clk clock.Clock,
	cfg config.Config,
) commands.ScanCommands {
	return commands.NewScanUseCase(u, platform, effects, c, clk, cfg.Scan.BaseURL)
}

func NewAuthCommands(cfg config.Config, jwtService *jwt.Service) commands.AuthCommands {
	return commands.NewAuthUseCase(cfg.Auth.APIKey, jwtService, cfg.Auth.JWTDuration)
}
