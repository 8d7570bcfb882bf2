package jobs

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/usecases"
	"github.com/veridoc/veridoc-backend/utils"
)

// GenerateDailyRoots commits yesterday's events to a Merkle root for every
// tenant that does not have one yet. Running it again is harmless: tenants
// with a stored root are not selected, and regeneration is idempotent anyway.
func GenerateDailyRoots(ctx context.Context, uc usecases.Usecases) error {
	logger := utils.LoggerFromContext(ctx)
	day := models.CalendarDay(time.Now().UTC().AddDate(0, 0, -1))

	exec := uc.Repositories.ExecutorGetter.GetExecutor()
	tenants, err := uc.Repositories.VeridocDbRepository.ListTenantsMissingRoot(ctx, exec, day)
	if err != nil {
		return errors.Wrap(err, "could not list tenants missing a daily root")
	}

	rootUsecase := uc.NewAuditRootUsecase()

	var jobErr error
	for _, tenantId := range tenants {
		root, err := rootUsecase.GenerateDailyRoot(ctx, tenantId, day)
		if err != nil {
			logger.ErrorContext(ctx, "daily root generation failed",
				"tenant_id", tenantId.String(),
				"date", day.Format(time.DateOnly),
				"error", err.Error())
			jobErr = errors.CombineErrors(jobErr, err)
			continue
		}
		if root != nil {
			logger.InfoContext(ctx, "daily root generated",
				"tenant_id", tenantId.String(),
				"date", day.Format(time.DateOnly),
				"merkle_root", root.MerkleRoot,
				"event_count", root.EventCount)
		}
	}
	return jobErr
}
