package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories"
	"github.com/veridoc/veridoc-backend/usecases/executor_factory"
	"github.com/veridoc/veridoc-backend/utils"
)

type AuditVerificationRepository interface {
	CreateAuditVerification(ctx context.Context, exec repositories.Executor,
		verification models.AuditVerification) error
	ListAuditVerifications(ctx context.Context, exec repositories.Executor,
		tenantId uuid.UUID) ([]models.AuditVerification, error)
}

type verificationEventsRepository interface {
	ListAuditEventsBySequenceRange(ctx context.Context, exec repositories.Executor,
		tenantId uuid.UUID, from, until time.Time, afterSequence int64, limit int) ([]models.AuditEvent, error)
}

type verificationRootsRepository interface {
	ListAuditRoots(ctx context.Context, exec repositories.Executor,
		tenantId uuid.UUID, rangeStart, rangeEnd *time.Time) ([]models.AuditRoot, error)
}

type AuditVerificationUsecase struct {
	executorFactory        executor_factory.ExecutorFactory
	eventRepository        verificationEventsRepository
	rootRepository         verificationRootsRepository
	verificationRepository AuditVerificationRepository
}

// verificationPageSize bounds memory on large ranges: events are streamed in
// sequence order, only the per-day hash lists are retained for the Merkle
// cross-check.
const verificationPageSize = 500

// Verify recomputes every hash, chain link and daily root of a tenant over a
// date range (inclusive calendar days, UTC) and persists the outcome.
// Discovered tampering is reported as findings in a FAILED verification,
// never as an error: the call only errors when it cannot read or write
// storage. Reads observe whatever is committed; concurrent appends to later
// days are simply not part of this run.
func (usecase AuditVerificationUsecase) Verify(
	ctx context.Context,
	tenantId uuid.UUID,
	rangeStart, rangeEnd time.Time,
	verifiedBy uuid.UUID,
) (models.AuditVerification, error) {
	if tenantId == uuid.Nil {
		return models.AuditVerification{}, errors.Wrap(models.BadParameterError,
			"verification: tenant id is required")
	}
	if verifiedBy == uuid.Nil {
		return models.AuditVerification{}, errors.Wrap(models.BadParameterError,
			"verification: verified_by is required")
	}
	rangeStart = models.CalendarDay(rangeStart)
	rangeEnd = models.CalendarDay(rangeEnd)
	if rangeEnd.Before(rangeStart) {
		return models.AuditVerification{}, errors.Wrap(models.BadParameterError,
			"verification: range end is before range start")
	}

	exec := usecase.executorFactory.NewExecutor()

	findings, err := usecase.checkEvents(ctx, exec, tenantId, rangeStart, rangeEnd)
	if err != nil {
		return models.AuditVerification{}, err
	}

	verification := models.AuditVerification{
		Id:         uuid.New(),
		TenantId:   tenantId,
		VerifiedBy: verifiedBy,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Result:     models.VerificationPassed,
		Findings:   findings,
	}
	if len(findings) > 0 {
		verification.Result = models.VerificationFailed
	}

	if err := usecase.verificationRepository.CreateAuditVerification(ctx, exec, verification); err != nil {
		return models.AuditVerification{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "audit verification completed",
		"tenant_id", tenantId.String(),
		"range_start", rangeStart.Format(time.DateOnly),
		"range_end", rangeEnd.Format(time.DateOnly),
		"result", verification.Result,
		"findings", len(findings))

	return verification, nil
}

func (usecase AuditVerificationUsecase) checkEvents(
	ctx context.Context,
	exec repositories.Executor,
	tenantId uuid.UUID,
	rangeStart, rangeEnd time.Time,
) ([]models.AuditFinding, error) {
	findings := make([]models.AuditFinding, 0)
	until := rangeEnd.AddDate(0, 0, 1)

	dayHashes := make(map[time.Time][]string)
	var previous *models.AuditEvent
	afterSequence := int64(0)

	for {
		events, err := usecase.eventRepository.ListAuditEventsBySequenceRange(
			ctx, exec, tenantId, rangeStart, until, afterSequence, verificationPageSize)
		if err != nil {
			return nil, err
		}

		for _, event := range events {
			day := models.CalendarDay(event.CreatedAt)

			recomputed, err := models.ComputeEventHash(event)
			if err != nil {
				// a stored values document that no longer parses is tampering,
				// not an infrastructure failure
				recomputed = ""
			}
			if recomputed != event.EventHash {
				findings = append(findings, models.AuditFinding{
					Kind:           models.AuditFindingHashError,
					SequenceNumber: event.SequenceNumber,
					Date:           day.Format(time.DateOnly),
					Expected:       event.EventHash,
					Actual:         recomputed,
				})
			}

			if previous != nil && event.PreviousHash != previous.EventHash {
				findings = append(findings, models.AuditFinding{
					Kind:           models.AuditFindingChainError,
					SequenceNumber: event.SequenceNumber,
					Date:           day.Format(time.DateOnly),
					Expected:       previous.EventHash,
					Actual:         event.PreviousHash,
				})
			}

			dayHashes[day] = append(dayHashes[day], event.EventHash)

			event := event
			previous = &event
			afterSequence = event.SequenceNumber
		}

		if len(events) < verificationPageSize {
			break
		}
	}

	roots, err := usecase.rootRepository.ListAuditRoots(ctx, exec, tenantId, &rangeStart, &rangeEnd)
	if err != nil {
		return nil, err
	}

	// days with events but no stored root are only chain-checked; days with a
	// root but no surviving events recompute to "" and fail the comparison
	for _, root := range roots {
		recomputed := models.MerkleRoot(dayHashes[root.Date])
		if recomputed != root.MerkleRoot {
			findings = append(findings, models.AuditFinding{
				Kind:     models.AuditFindingMerkleError,
				Date:     root.Date.Format(time.DateOnly),
				Expected: root.MerkleRoot,
				Actual:   recomputed,
			})
		}
	}

	return findings, nil
}

func (usecase AuditVerificationUsecase) ListVerifications(
	ctx context.Context,
	tenantId uuid.UUID,
) ([]models.AuditVerification, error) {
	if tenantId == uuid.Nil {
		return nil, errors.Wrap(models.BadParameterError, "verification: tenant id is required")
	}
	return usecase.verificationRepository.ListAuditVerifications(ctx,
		usecase.executorFactory.NewExecutor(), tenantId)
}
