package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/dto"
	"github.com/veridoc/veridoc-backend/models"
)

type VerifyConfig struct {
	TenantId   string
	RangeStart string
	RangeEnd   string
	VerifiedBy string
}

// RunVerify executes one compliance verification over a date range and writes
// the structured outcome to stdout. The returned result lets the caller exit
// non-zero when tampering was found, which is not an error of the run itself.
func RunVerify(ctx context.Context, config VerifyConfig) (models.VerificationResult, error) {
	tenantId, err := uuid.Parse(config.TenantId)
	if err != nil {
		return "", errors.Wrapf(models.BadParameterError, "invalid tenant id %q", config.TenantId)
	}
	verifiedBy, err := uuid.Parse(config.VerifiedBy)
	if err != nil {
		return "", errors.Wrapf(models.BadParameterError, "invalid verified-by id %q", config.VerifiedBy)
	}
	rangeStart, err := time.Parse(time.DateOnly, config.RangeStart)
	if err != nil {
		return "", errors.Wrapf(models.BadParameterError, "invalid range start %q", config.RangeStart)
	}
	rangeEnd, err := time.Parse(time.DateOnly, config.RangeEnd)
	if err != nil {
		return "", errors.Wrapf(models.BadParameterError, "invalid range end %q", config.RangeEnd)
	}

	uc, err := SetupUsecases(ctx)
	if err != nil {
		return "", err
	}

	verification, err := uc.NewAuditVerificationUsecase().Verify(ctx,
		tenantId, rangeStart, rangeEnd, verifiedBy)
	if err != nil {
		return "", err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(dto.AdaptAuditVerification(verification)); err != nil {
		return "", errors.Wrap(err, "could not render verification result")
	}

	return verification.Result, nil
}
