package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories/dbmodels"
)

// UpsertAuditRoot inserts the daily root, replacing a previous commitment for
// the same (tenant, date). Whether replacement is allowed at all is the
// usecase's decision, made before calling this.
func (repo *VeridocDbRepository) UpsertAuditRoot(ctx context.Context, exec Executor,
	root models.AuditRoot,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_AUDIT_ROOTS).
		Columns(
			"id",
			"tenant_id",
			"date",
			"merkle_root",
			"event_count",
			"first_sequence",
			"last_sequence",
		).
		Values(
			root.Id,
			root.TenantId,
			root.Date,
			root.MerkleRoot,
			root.EventCount,
			root.FirstSequence,
			root.LastSequence,
		).
		Suffix(`ON CONFLICT (tenant_id, date) DO UPDATE SET
			merkle_root = EXCLUDED.merkle_root,
			event_count = EXCLUDED.event_count,
			first_sequence = EXCLUDED.first_sequence,
			last_sequence = EXCLUDED.last_sequence`)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *VeridocDbRepository) GetAuditRootByDate(ctx context.Context, exec Executor,
	tenantId uuid.UUID, day time.Time,
) (*models.AuditRoot, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditRootColumns...).
		From(dbmodels.TABLE_AUDIT_ROOTS).
		Where(squirrel.Eq{
			"tenant_id": tenantId,
			"date":      models.CalendarDay(day),
		})

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptAuditRoot)
}

func (repo *VeridocDbRepository) ListAuditRoots(ctx context.Context, exec Executor,
	tenantId uuid.UUID, rangeStart, rangeEnd *time.Time,
) ([]models.AuditRoot, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditRootColumns...).
		From(dbmodels.TABLE_AUDIT_ROOTS).
		Where(squirrel.Eq{"tenant_id": tenantId}).
		OrderBy("date ASC")

	if rangeStart != nil {
		query = query.Where(squirrel.GtOrEq{"date": models.CalendarDay(*rangeStart)})
	}
	if rangeEnd != nil {
		query = query.Where(squirrel.LtOrEq{"date": models.CalendarDay(*rangeEnd)})
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAuditRoot)
}
