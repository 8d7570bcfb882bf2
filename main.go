package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/veridoc/veridoc-backend/cmd"
	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/utils"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run database migrations")
	shouldRunScheduler := flag.Bool("scheduler", false, "Run the job scheduler")
	shouldRunVerify := flag.Bool("verify", false, "Run one integrity verification")

	verifyTenantId := flag.String("tenant", "", "Tenant id to verify")
	verifyRangeStart := flag.String("from", "", "Verification range start (YYYY-MM-DD)")
	verifyRangeEnd := flag.String("to", "", "Verification range end (YYYY-MM-DD)")
	verifyVerifiedBy := flag.String("verified-by", "", "Actor id recorded on the verification")
	flag.Parse()

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(ctx); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldRunScheduler {
		if err := cmd.RunJobScheduler(ctx); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldRunVerify {
		result, err := cmd.RunVerify(ctx, cmd.VerifyConfig{
			TenantId:   *verifyTenantId,
			RangeStart: *verifyRangeStart,
			RangeEnd:   *verifyRangeEnd,
			VerifiedBy: *verifyVerifiedBy,
		})
		if err != nil {
			log.Fatal(err)
		}
		if result != models.VerificationPassed {
			os.Exit(1)
		}
	}
}
