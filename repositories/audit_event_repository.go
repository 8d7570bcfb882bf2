package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/veridoc/veridoc-backend/dto"
	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/repositories/dbmodels"
)

// AcquireTenantChainLock serializes appends to one tenant's hash chain. The
// advisory lock is transaction-scoped: it is released at commit or rollback,
// so the read-previous-then-insert sequence runs as a critical section per
// tenant without blocking writers of other tenants.
func (repo *VeridocDbRepository) AcquireTenantChainLock(ctx context.Context, exec Transaction,
	tenantId uuid.UUID,
) error {
	_, err := exec.Exec(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended($1, 0))",
		tenantId.String())
	return errors.Wrap(err, "could not acquire tenant chain lock")
}

// NextAuditSequence allocates one value from the global event sequence. The
// sequence is shared across all tenants; a tenant's chain order is its own
// subsequence of it.
func (repo *VeridocDbRepository) NextAuditSequence(ctx context.Context, exec Executor) (int64, error) {
	var sequenceNumber int64
	err := exec.QueryRow(ctx, "SELECT nextval('audit_event_sequence')").Scan(&sequenceNumber)
	if err != nil {
		return 0, errors.Wrap(err, "could not allocate audit sequence number")
	}
	return sequenceNumber, nil
}

// TransactionTimestamp reads the database clock. The recorder hashes this
// value and stores it as created_at, so the hashed timestamp and the stored
// one cannot diverge.
func (repo *VeridocDbRepository) TransactionTimestamp(ctx context.Context, exec Executor) (time.Time, error) {
	var now time.Time
	err := exec.QueryRow(ctx, "SELECT now()").Scan(&now)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "could not read transaction timestamp")
	}
	return now, nil
}

func (repo *VeridocDbRepository) GetLatestAuditEvent(ctx context.Context, exec Executor,
	tenantId uuid.UUID,
) (*models.AuditEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditEventColumns...).
		From(dbmodels.TABLE_AUDIT_EVENTS).
		Where(squirrel.Eq{"tenant_id": tenantId}).
		OrderBy("sequence_number DESC").
		Limit(1)

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptAuditEvent)
}

func (repo *VeridocDbRepository) CreateAuditEvent(ctx context.Context, exec Executor,
	event models.AuditEvent,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_AUDIT_EVENTS).
		Columns(
			"sequence_number",
			"event_type",
			"entity_type",
			"entity_id",
			"actor_id",
			"tenant_id",
			"ip_address",
			"user_agent",
			"old_values",
			"new_values",
			"metadata",
			"event_hash",
			"previous_hash",
			"created_at",
		).
		Values(
			event.SequenceNumber,
			event.EventType,
			event.EntityType,
			event.EntityId,
			event.ActorId,
			event.TenantId,
			event.IpAddress,
			event.UserAgent,
			event.OldValues,
			event.NewValues,
			event.Metadata,
			event.EventHash,
			event.PreviousHash,
			event.CreatedAt,
		)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *VeridocDbRepository) GetAuditEvent(ctx context.Context, exec Executor,
	sequenceNumber int64,
) (models.AuditEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditEventColumns...).
		From(dbmodels.TABLE_AUDIT_EVENTS).
		Where(squirrel.Eq{"sequence_number": sequenceNumber})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptAuditEvent)
}

func applyAuditEventFilters(query squirrel.SelectBuilder, filters dto.AuditEventFilters) squirrel.SelectBuilder {
	query = query.Where(squirrel.Eq{"tenant_id": filters.TenantId})

	if filters.From != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": *filters.From})
	}
	if filters.To != nil {
		query = query.Where(squirrel.Lt{"created_at": *filters.To})
	}
	if filters.EventType != "" {
		query = query.Where(squirrel.Eq{"event_type": filters.EventType})
	}
	if filters.EntityType != "" {
		query = query.Where(squirrel.Eq{"entity_type": filters.EntityType})
	}
	if filters.EntityId != "" {
		query = query.Where(squirrel.Eq{"entity_id": filters.EntityId})
	}
	if filters.ActorId != "" {
		query = query.Where(squirrel.Eq{"actor_id": filters.ActorId})
	}
	return query
}

func (repo *VeridocDbRepository) ListAuditEvents(ctx context.Context, exec Executor,
	filters dto.AuditEventFilters, pagination models.PaginationAndSorting,
) ([]models.AuditEvent, error) {
	pagination = models.WithPaginationDefaults(pagination)

	query := applyAuditEventFilters(
		NewQueryBuilder().
			Select(dbmodels.SelectAuditEventColumns...).
			From(dbmodels.TABLE_AUDIT_EVENTS),
		filters,
	).
		OrderBy("sequence_number " + string(pagination.Order)).
		Limit(uint64(pagination.Limit))

	if pagination.OffsetSequence > 0 {
		if pagination.Order == models.SortingOrderAsc {
			query = query.Where(squirrel.Gt{"sequence_number": pagination.OffsetSequence})
		} else {
			query = query.Where(squirrel.Lt{"sequence_number": pagination.OffsetSequence})
		}
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAuditEvent)
}

func (repo *VeridocDbRepository) CountAuditEvents(ctx context.Context, exec Executor,
	filters dto.AuditEventFilters,
) (int, error) {
	query := applyAuditEventFilters(
		NewQueryBuilder().
			Select("count(*)").
			From(dbmodels.TABLE_AUDIT_EVENTS),
		filters,
	)

	return SqlToRow(ctx, exec, query, func(row pgx.CollectableRow) (int, error) {
		var count int
		err := row.Scan(&count)
		return count, err
	})
}

// ListAuditEventsBySequenceRange pages through a tenant's events within a time
// window, in sequence order. afterSequence is an exclusive cursor; pass 0 to
// start from the beginning of the window.
func (repo *VeridocDbRepository) ListAuditEventsBySequenceRange(ctx context.Context, exec Executor,
	tenantId uuid.UUID, from, until time.Time, afterSequence int64, limit int,
) ([]models.AuditEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditEventColumns...).
		From(dbmodels.TABLE_AUDIT_EVENTS).
		Where(squirrel.Eq{"tenant_id": tenantId}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": until}).
		Where(squirrel.Gt{"sequence_number": afterSequence}).
		OrderBy("sequence_number ASC").
		Limit(uint64(limit))

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAuditEvent)
}

func (repo *VeridocDbRepository) ListAuditEventsByDay(ctx context.Context, exec Executor,
	tenantId uuid.UUID, day time.Time,
) ([]models.AuditEvent, error) {
	day = models.CalendarDay(day)

	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditEventColumns...).
		From(dbmodels.TABLE_AUDIT_EVENTS).
		Where(squirrel.Eq{"tenant_id": tenantId}).
		Where(squirrel.GtOrEq{"created_at": day}).
		Where(squirrel.Lt{"created_at": day.AddDate(0, 0, 1)}).
		OrderBy("sequence_number ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAuditEvent)
}

func (repo *VeridocDbRepository) ListEntityTrail(ctx context.Context, exec Executor,
	tenantId uuid.UUID, entityType, entityId string,
) ([]models.AuditEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditEventColumns...).
		From(dbmodels.TABLE_AUDIT_EVENTS).
		Where(squirrel.Eq{
			"tenant_id":   tenantId,
			"entity_type": entityType,
			"entity_id":   entityId,
		}).
		OrderBy("sequence_number ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAuditEvent)
}

// ListTenantsMissingRoot returns the tenants that have events on the given day
// but no stored daily root yet.
func (repo *VeridocDbRepository) ListTenantsMissingRoot(ctx context.Context, exec Executor,
	day time.Time,
) ([]uuid.UUID, error) {
	day = models.CalendarDay(day)

	query := NewQueryBuilder().
		Select("DISTINCT e.tenant_id").
		From(dbmodels.TABLE_AUDIT_EVENTS + " e").
		Where(squirrel.GtOrEq{"e.created_at": day}).
		Where(squirrel.Lt{"e.created_at": day.AddDate(0, 0, 1)}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM "+dbmodels.TABLE_AUDIT_ROOTS+
				" r WHERE r.tenant_id = e.tenant_id AND r.date = ?)",
			day,
		))

	return SqlToListOfRow(ctx, exec, query, func(row pgx.CollectableRow) (uuid.UUID, error) {
		var tenantId uuid.UUID
		err := row.Scan(&tenantId)
		return tenantId, err
	})
}
