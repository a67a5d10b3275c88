package bootstrap

import (
	"log/slog"
	"net/http"

	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/infra/gateway/authorizenet"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewGatewayHTTPClient,
		NewPaymentGateway,
	),
)

func NewGatewayHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: cfg.Gateway.Timeout}
}

// NewPaymentGateway builds the Authorize.net adapter. No currency converter is configured,
// so only USD requests are accepted.
func NewPaymentGateway(cfg config.Config, client *http.Client, clk clock.Clock, logger *slog.Logger) payment.Gateway {
	logger.Info("payment gateway configured",
		slog.String("gateway", authorizenet.Name),
		slog.Bool("test", cfg.Gateway.Test))
	return authorizenet.NewAdapter(
		authorizenet.NewConfig(cfg.Gateway),
		authorizenet.NewTransport(client, logger),
		nil,
		clk,
		logger,
	)
}
