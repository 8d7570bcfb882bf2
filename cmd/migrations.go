package cmd

import (
	"context"

	"github.com/veridoc/veridoc-backend/repositories"
	"github.com/veridoc/veridoc-backend/utils"
)

func RunMigrations(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)
	return repositories.RunMigrations(PgConfigFromEnv(), logger)
}
