package readstore

import (
	"log/slog"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/pgconv"
)

func wrapReadErr(logger *slog.Logger, msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(logger, infra.KindNotFound, msg, err)
	}
	return infra.WrapRepoErr(logger, infra.KindDBFailure, msg, err)
}
