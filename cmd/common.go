package cmd

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/veridoc/veridoc-backend/infra"
	"github.com/veridoc/veridoc-backend/repositories"
	"github.com/veridoc/veridoc-backend/usecases"
	"github.com/veridoc/veridoc-backend/utils"
)

func PgConfigFromEnv() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:    utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:            utils.GetEnv("PG_DATABASE", "veridoc"),
		DbConnectWithSocket: utils.GetEnv("PG_CONNECT_WITH_SOCKET", false),
		Hostname:            utils.GetEnv("PG_HOSTNAME", "localhost"),
		Password:            utils.GetEnv("PG_PASSWORD", ""),
		Port:                utils.GetEnv("PG_PORT", "5432"),
		User:                utils.GetEnv("PG_USER", "postgres"),
		SslMode:             utils.GetEnv("PG_SSL_MODE", ""),
	}
}

func SetupUsecases(ctx context.Context) (usecases.Usecases, error) {
	pool, err := infra.NewPostgresConnectionPool(ctx, PgConfigFromEnv().GetConnectionString())
	if err != nil {
		return usecases.Usecases{}, errors.Wrap(err, "could not create connection pool")
	}

	return usecases.NewUsecases(repositories.NewRepositories(pool)), nil
}
