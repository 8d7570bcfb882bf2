package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories"
)

type AuditVerificationRepository struct {
	mock.Mock
}

func (r *AuditVerificationRepository) CreateAuditVerification(ctx context.Context,
	exec repositories.Executor, verification models.AuditVerification,
) error {
	args := r.Called(ctx, exec, verification)
	return args.Error(0)
}

func (r *AuditVerificationRepository) ListAuditVerifications(ctx context.Context,
	exec repositories.Executor, tenantId uuid.UUID,
) ([]models.AuditVerification, error) {
	args := r.Called(ctx, exec, tenantId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditVerification), args.Error(1)
}

func (r *AuditVerificationRepository) HasPassedVerificationCovering(ctx context.Context,
	exec repositories.Executor, tenantId uuid.UUID, day time.Time,
) (bool, error) {
	args := r.Called(ctx, exec, tenantId, day)
	return args.Bool(0), args.Error(1)
}
