package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/pure_utils"
	"github.com/veridoc/veridoc-backend/repositories"
	"github.com/veridoc/veridoc-backend/usecases/executor_factory"
)

type AuditRootRepository interface {
	UpsertAuditRoot(ctx context.Context, exec repositories.Executor, root models.AuditRoot) error
	GetAuditRootByDate(ctx context.Context, exec repositories.Executor,
		tenantId uuid.UUID, day time.Time) (*models.AuditRoot, error)
	ListAuditRoots(ctx context.Context, exec repositories.Executor,
		tenantId uuid.UUID, rangeStart, rangeEnd *time.Time) ([]models.AuditRoot, error)
}

type dailyRootEventsRepository interface {
	ListAuditEventsByDay(ctx context.Context, exec repositories.Executor,
		tenantId uuid.UUID, day time.Time) ([]models.AuditEvent, error)
}

type passedVerificationReader interface {
	HasPassedVerificationCovering(ctx context.Context, exec repositories.Executor,
		tenantId uuid.UUID, day time.Time) (bool, error)
}

type AuditRootUsecase struct {
	executorFactory        executor_factory.ExecutorFactory
	transactionFactory     executor_factory.TransactionFactory
	eventRepository        dailyRootEventsRepository
	rootRepository         AuditRootRepository
	verificationRepository passedVerificationReader
}

// GenerateDailyRoot commits one tenant's events of a calendar day to a Merkle
// root. Returns nil for a day without events. The operation is idempotent:
// recomputing an unchanged day yields the same root and writes nothing.
// A recomputation that would change a root already covered by a passed
// verification is refused, since that would invalidate a delivered proof.
func (usecase AuditRootUsecase) GenerateDailyRoot(
	ctx context.Context,
	tenantId uuid.UUID,
	day time.Time,
) (*models.AuditRoot, error) {
	if tenantId == uuid.Nil {
		return nil, errors.Wrap(models.BadParameterError, "daily root: tenant id is required")
	}
	day = models.CalendarDay(day)

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (*models.AuditRoot, error) {
			events, err := usecase.eventRepository.ListAuditEventsByDay(ctx, tx, tenantId, day)
			if err != nil {
				return nil, err
			}
			if len(events) == 0 {
				return nil, nil
			}

			root := models.AuditRoot{
				Id:       uuid.New(),
				TenantId: tenantId,
				Date:     day,
				MerkleRoot: models.MerkleRoot(pure_utils.Map(events,
					func(event models.AuditEvent) string { return event.EventHash })),
				EventCount:    len(events),
				FirstSequence: events[0].SequenceNumber,
				LastSequence:  events[len(events)-1].SequenceNumber,
			}

			existing, err := usecase.rootRepository.GetAuditRootByDate(ctx, tx, tenantId, day)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				if existing.MerkleRoot == root.MerkleRoot {
					return existing, nil
				}

				referenced, err := usecase.verificationRepository.HasPassedVerificationCovering(
					ctx, tx, tenantId, day)
				if err != nil {
					return nil, err
				}
				if referenced {
					return nil, errors.Wrapf(models.ErrRootReferenced,
						"tenant %s, day %s", tenantId, day.Format(time.DateOnly))
				}
			}

			if err := usecase.rootRepository.UpsertAuditRoot(ctx, tx, root); err != nil {
				return nil, err
			}
			return &root, nil
		})
}

// GetMerkleRoots lists stored daily commitments, for operators and for
// external anchoring.
func (usecase AuditRootUsecase) GetMerkleRoots(
	ctx context.Context,
	tenantId uuid.UUID,
	rangeStart, rangeEnd *time.Time,
) ([]models.AuditRoot, error) {
	if tenantId == uuid.Nil {
		return nil, errors.Wrap(models.BadParameterError, "merkle roots: tenant id is required")
	}

	return usecase.rootRepository.ListAuditRoots(ctx,
		usecase.executorFactory.NewExecutor(), tenantId, rangeStart, rangeEnd)
}
