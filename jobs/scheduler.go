package jobs

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"

	"github.com/veridoc/veridoc-backend/usecases"
	"github.com/veridoc/veridoc-backend/utils"
)

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func RunScheduler(ctx context.Context, uc usecases.Usecases) {
	taskr := tasker.New(tasker.Option{
		Verbose: true,
		Tz:      "UTC",
	}).WithContext(ctx)

	notConcurrent := false
	// shortly after midnight UTC, once the previous calendar day is closed
	taskr.Task("15 0 * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "generate_daily_roots")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := GenerateDailyRoots(ctx, uc)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Run()
}
