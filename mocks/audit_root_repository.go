package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories"
)

type AuditRootRepository struct {
	mock.Mock
}

func (r *AuditRootRepository) UpsertAuditRoot(ctx context.Context,
	exec repositories.Executor, root models.AuditRoot,
) error {
	args := r.Called(ctx, exec, root)
	return args.Error(0)
}

func (r *AuditRootRepository) GetAuditRootByDate(ctx context.Context,
	exec repositories.Executor, tenantId uuid.UUID, day time.Time,
) (*models.AuditRoot, error) {
	args := r.Called(ctx, exec, tenantId, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditRoot), args.Error(1)
}

func (r *AuditRootRepository) ListAuditRoots(ctx context.Context,
	exec repositories.Executor, tenantId uuid.UUID, rangeStart, rangeEnd *time.Time,
) ([]models.AuditRoot, error) {
	args := r.Called(ctx, exec, tenantId, rangeStart, rangeEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditRoot), args.Error(1)
}
