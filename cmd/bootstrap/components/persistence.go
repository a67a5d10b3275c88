package components

import (
	"storefront-checkout/internal/infra/readstore"
	"storefront-checkout/internal/infra/repository"
	"storefront-checkout/internal/infra/uow"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewProductCatalogReadStore,
			fx.As(new(commands.ProductCatalog)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Live stock
		fx.Annotate(
			repository.NewProductRepository,
			fx.As(new(commands.ProductRepository)),
		),
		fx.Annotate(
			repository.NewOptionItemRepository,
			fx.As(new(commands.OptionItemRepository)),
		),
		// Discount
		fx.Annotate(
			repository.NewDiscountRepository,
			fx.As(new(commands.DiscountRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) shared.DBTX {
	return pool
}
