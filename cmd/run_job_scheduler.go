package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/veridoc/veridoc-backend/jobs"
)

func RunJobScheduler(ctx context.Context) error {
	uc, err := SetupUsecases(ctx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs.RunScheduler(ctx, uc)
	return nil
}
