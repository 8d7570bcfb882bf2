package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/dto"
	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories"
	"github.com/veridoc/veridoc-backend/usecases/executor_factory"
)

type AuditEventReadRepository interface {
	ListAuditEvents(ctx context.Context, exec repositories.Executor,
		filters dto.AuditEventFilters, pagination models.PaginationAndSorting) ([]models.AuditEvent, error)
	CountAuditEvents(ctx context.Context, exec repositories.Executor,
		filters dto.AuditEventFilters) (int, error)
	ListEntityTrail(ctx context.Context, exec repositories.Executor,
		tenantId uuid.UUID, entityType, entityId string) ([]models.AuditEvent, error)
}

// AuditQueryUsecase is the read-only façade over the ledger. It carries no
// chain or Merkle logic: other subsystems and operator tooling come through
// here instead of re-implementing read access.
type AuditQueryUsecase struct {
	executorFactory executor_factory.ExecutorFactory
	repository      AuditEventReadRepository
}

func (usecase AuditQueryUsecase) GetEvents(
	ctx context.Context,
	filters dto.AuditEventFilters,
	pagination models.PaginationAndSorting,
) ([]models.AuditEvent, int, error) {
	if filters.TenantId == uuid.Nil {
		return nil, 0, errors.Wrap(models.BadParameterError, "audit query: tenant id is required")
	}

	exec := usecase.executorFactory.NewExecutor()

	events, err := usecase.repository.ListAuditEvents(ctx, exec, filters, pagination)
	if err != nil {
		return nil, 0, err
	}
	total, err := usecase.repository.CountAuditEvents(ctx, exec, filters)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (usecase AuditQueryUsecase) GetEntityTrail(
	ctx context.Context,
	tenantId uuid.UUID,
	entityType, entityId string,
) ([]models.AuditEvent, error) {
	if tenantId == uuid.Nil {
		return nil, errors.Wrap(models.BadParameterError, "audit query: tenant id is required")
	}
	if entityType == "" || entityId == "" {
		return nil, errors.Wrap(models.BadParameterError, "audit query: entity type and id are required")
	}

	return usecase.repository.ListEntityTrail(ctx,
		usecase.executorFactory.NewExecutor(), tenantId, entityType, entityId)
}
