package components

import (
	"log/slog"

	"storefront-checkout/internal/infra/session"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var SessionModule = fx.Module("session",
	fx.Provide(
		fx.Annotate(
			NewCartStore,
			fx.As(new(commands.CartStore)),
			fx.As(new(queries.CartSnapshotReader)),
		),
		fx.Annotate(
			NewCheckoutLock,
			fx.As(new(commands.CheckoutLock)),
		),
	),
)

func NewCartStore(client redis.UniversalClient, cfg config.Config, logger *slog.Logger) *session.RedisCartStore {
	return session.NewRedisCartStore(client, cfg.Cart, logger)
}

// NewCheckoutLock never lets the lock expire before a gateway call could time out.
func NewCheckoutLock(client redis.UniversalClient, cfg config.Config) *session.RedisCheckoutLock {
	ttl := max(cfg.Cart.LockTTL, commands.CheckoutLockTTL(cfg.Gateway.Timeout))
	return session.NewRedisCheckoutLock(client, ttl)
}
