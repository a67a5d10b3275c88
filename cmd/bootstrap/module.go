package bootstrap

import (
	"storefront-checkout/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	JWTModule,
	GatewayModule,
	components.PersistenceModule,
	components.SessionModule,
	components.UseCaseModule,
	components.HandlerModule,
)
