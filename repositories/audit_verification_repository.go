package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories/dbmodels"
)

func (repo *VeridocDbRepository) CreateAuditVerification(ctx context.Context, exec Executor,
	verification models.AuditVerification,
) error {
	details, err := dbmodels.SerializeAuditFindings(verification.Findings)
	if err != nil {
		return err
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_AUDIT_VERIFICATIONS).
		Columns(
			"id",
			"tenant_id",
			"verified_by",
			"range_start",
			"range_end",
			"result",
			"details",
		).
		Values(
			verification.Id,
			verification.TenantId,
			verification.VerifiedBy,
			verification.RangeStart,
			verification.RangeEnd,
			verification.Result,
			details,
		)

	_, err = ExecBuilder(ctx, exec, query)
	return err
}

func (repo *VeridocDbRepository) ListAuditVerifications(ctx context.Context, exec Executor,
	tenantId uuid.UUID,
) ([]models.AuditVerification, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditVerificationColumns...).
		From(dbmodels.TABLE_AUDIT_VERIFICATIONS).
		Where(squirrel.Eq{"tenant_id": tenantId}).
		OrderBy("created_at DESC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAuditVerification)
}

// HasPassedVerificationCovering reports whether a PASSED verification already
// covers the given day. Such a day's root is part of a delivered proof and
// must not silently change afterwards.
func (repo *VeridocDbRepository) HasPassedVerificationCovering(ctx context.Context, exec Executor,
	tenantId uuid.UUID, day time.Time,
) (bool, error) {
	day = models.CalendarDay(day)

	query := NewQueryBuilder().
		Select("count(*)").
		From(dbmodels.TABLE_AUDIT_VERIFICATIONS).
		Where(squirrel.Eq{
			"tenant_id": tenantId,
			"result":    models.VerificationPassed,
		}).
		Where(squirrel.LtOrEq{"range_start": day}).
		Where(squirrel.GtOrEq{"range_end": day})

	count, err := SqlToRow(ctx, exec, query, func(row pgx.CollectableRow) (int, error) {
		var count int
		err := row.Scan(&count)
		return count, err
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
