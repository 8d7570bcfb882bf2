package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/veridoc/veridoc-backend/dto"
	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories"
)

type AuditEventRepository struct {
	mock.Mock
}

func (r *AuditEventRepository) AcquireTenantChainLock(ctx context.Context,
	exec repositories.Transaction, tenantId uuid.UUID,
) error {
	args := r.Called(ctx, exec, tenantId)
	return args.Error(0)
}

func (r *AuditEventRepository) GetLatestAuditEvent(ctx context.Context,
	exec repositories.Executor, tenantId uuid.UUID,
) (*models.AuditEvent, error) {
	args := r.Called(ctx, exec, tenantId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditEvent), args.Error(1)
}

func (r *AuditEventRepository) NextAuditSequence(ctx context.Context,
	exec repositories.Executor,
) (int64, error) {
	args := r.Called(ctx, exec)
	return args.Get(0).(int64), args.Error(1)
}

func (r *AuditEventRepository) TransactionTimestamp(ctx context.Context,
	exec repositories.Executor,
) (time.Time, error) {
	args := r.Called(ctx, exec)
	return args.Get(0).(time.Time), args.Error(1)
}

func (r *AuditEventRepository) CreateAuditEvent(ctx context.Context,
	exec repositories.Executor, event models.AuditEvent,
) error {
	args := r.Called(ctx, exec, event)
	return args.Error(0)
}

func (r *AuditEventRepository) ListAuditEvents(ctx context.Context, exec repositories.Executor,
	filters dto.AuditEventFilters, pagination models.PaginationAndSorting,
) ([]models.AuditEvent, error) {
	args := r.Called(ctx, exec, filters, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditEvent), args.Error(1)
}

func (r *AuditEventRepository) CountAuditEvents(ctx context.Context, exec repositories.Executor,
	filters dto.AuditEventFilters,
) (int, error) {
	args := r.Called(ctx, exec, filters)
	return args.Int(0), args.Error(1)
}

func (r *AuditEventRepository) ListAuditEventsBySequenceRange(ctx context.Context,
	exec repositories.Executor, tenantId uuid.UUID, from, until time.Time,
	afterSequence int64, limit int,
) ([]models.AuditEvent, error) {
	args := r.Called(ctx, exec, tenantId, from, until, afterSequence, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditEvent), args.Error(1)
}

func (r *AuditEventRepository) ListAuditEventsByDay(ctx context.Context,
	exec repositories.Executor, tenantId uuid.UUID, day time.Time,
) ([]models.AuditEvent, error) {
	args := r.Called(ctx, exec, tenantId, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditEvent), args.Error(1)
}

func (r *AuditEventRepository) ListEntityTrail(ctx context.Context,
	exec repositories.Executor, tenantId uuid.UUID, entityType, entityId string,
) ([]models.AuditEvent, error) {
	args := r.Called(ctx, exec, tenantId, entityType, entityId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditEvent), args.Error(1)
}
