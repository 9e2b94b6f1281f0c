package components

import (
	"orderflow/internal/infra/db"
	"orderflow/internal/infra/readstore"
	"orderflow/internal/infra/uow"
	"orderflow/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// Write side goes through the transactional unit of work; the
		// repositories themselves are constructed per transaction.
		uow.NewPostgresUoW,
		// Read side queries the pool directly, outside any transaction.
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
