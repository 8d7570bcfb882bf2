package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/utils"
)

type DbAuditRoot struct {
	Id       uuid.UUID `db:"id"`
	TenantId uuid.UUID `db:"tenant_id"`

	Date          time.Time `db:"date"`
	MerkleRoot    string    `db:"merkle_root"`
	EventCount    int       `db:"event_count"`
	FirstSequence int64     `db:"first_sequence"`
	LastSequence  int64     `db:"last_sequence"`

	CreatedAt time.Time `db:"created_at"`
}

const TABLE_AUDIT_ROOTS = "audit_roots"

var SelectAuditRootColumns = utils.ColumnList[DbAuditRoot]()

func AdaptAuditRoot(db DbAuditRoot) (models.AuditRoot, error) {
	return models.AuditRoot{
		Id:            db.Id,
		TenantId:      db.TenantId,
		Date:          models.CalendarDay(db.Date),
		MerkleRoot:    db.MerkleRoot,
		EventCount:    db.EventCount,
		FirstSequence: db.FirstSequence,
		LastSequence:  db.LastSequence,
		CreatedAt:     db.CreatedAt,
	}, nil
}
