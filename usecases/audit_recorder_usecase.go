package usecases

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories"
	"github.com/veridoc/veridoc-backend/usecases/executor_factory"
	"github.com/veridoc/veridoc-backend/utils"
)

type AuditEventWriteRepository interface {
	AcquireTenantChainLock(ctx context.Context, exec repositories.Transaction, tenantId uuid.UUID) error
	GetLatestAuditEvent(ctx context.Context, exec repositories.Executor, tenantId uuid.UUID) (*models.AuditEvent, error)
	NextAuditSequence(ctx context.Context, exec repositories.Executor) (int64, error)
	TransactionTimestamp(ctx context.Context, exec repositories.Executor) (time.Time, error)
	CreateAuditEvent(ctx context.Context, exec repositories.Executor, event models.AuditEvent) error
}

type AuditRecorderUsecase struct {
	transactionFactory executor_factory.TransactionFactory
	repository         AuditEventWriteRepository
}

const chainRaceMaxAttempts = 3

// RecordEvent appends one immutable fact to the caller's tenant chain. The
// whole append runs in a single transaction under a per-tenant advisory lock,
// so the event is either fully committed with its hash or not there at all.
// A failure means the action was NOT audited; the caller decides what to do
// with that.
func (usecase AuditRecorderUsecase) RecordEvent(
	ctx context.Context,
	input models.CreateAuditEventInput,
) (models.AuditEvent, error) {
	if err := input.Validate(); err != nil {
		return models.AuditEvent{}, err
	}

	var event models.AuditEvent
	err := retry.Do(
		func() error {
			var attemptErr error
			event, attemptErr = usecase.recordEvent(ctx, input)
			return attemptErr
		},
		retry.Context(ctx),
		retry.Attempts(chainRaceMaxAttempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, models.ErrChainRace)
		}),
		retry.OnRetry(func(n uint, err error) {
			utils.LoggerFromContext(ctx).WarnContext(ctx,
				"retrying audit event append after chain conflict",
				"tenant_id", input.TenantId.String(),
				"attempt", n+1)
		}),
	)
	return event, err
}

func (usecase AuditRecorderUsecase) recordEvent(
	ctx context.Context,
	input models.CreateAuditEventInput,
) (models.AuditEvent, error) {
	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.AuditEvent, error) {
			if err := usecase.repository.AcquireTenantChainLock(ctx, tx, input.TenantId); err != nil {
				return models.AuditEvent{}, err
			}

			previous, err := usecase.repository.GetLatestAuditEvent(ctx, tx, input.TenantId)
			if err != nil {
				return models.AuditEvent{}, err
			}
			previousHash := models.GenesisHash
			if previous != nil {
				previousHash = previous.EventHash
			}

			sequenceNumber, err := usecase.repository.NextAuditSequence(ctx, tx)
			if err != nil {
				return models.AuditEvent{}, err
			}

			// Hash the database clock, then store the same value: the hashed
			// timestamp and created_at cannot diverge.
			createdAt, err := usecase.repository.TransactionTimestamp(ctx, tx)
			if err != nil {
				return models.AuditEvent{}, err
			}

			event := models.AuditEvent{
				SequenceNumber: sequenceNumber,
				EventType:      input.EventType,
				EntityType:     input.EntityType,
				EntityId:       input.EntityId,
				ActorId:        input.ActorId,
				TenantId:       input.TenantId,
				IpAddress:      input.IpAddress,
				UserAgent:      input.UserAgent,
				OldValues:      input.OldValues,
				NewValues:      input.NewValues,
				Metadata:       input.Metadata,
				PreviousHash:   previousHash,
				CreatedAt:      createdAt,
			}

			event.EventHash, err = models.ComputeEventHash(event)
			if err != nil {
				return models.AuditEvent{}, err
			}

			if err := usecase.repository.CreateAuditEvent(ctx, tx, event); err != nil {
				if repositories.IsUniqueViolationError(err) ||
					repositories.IsDeadlockError(err) ||
					repositories.IsSerializationFailureError(err) {
					return models.AuditEvent{}, errors.Mark(err, models.ErrChainRace)
				}
				return models.AuditEvent{}, err
			}

			return event, nil
		})
}
