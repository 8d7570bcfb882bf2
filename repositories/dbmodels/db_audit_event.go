package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/utils"
)

type DbAuditEvent struct {
	SequenceNumber int64 `db:"sequence_number"`

	EventType  string    `db:"event_type"`
	EntityType string    `db:"entity_type"`
	EntityId   string    `db:"entity_id"`
	ActorId    uuid.UUID `db:"actor_id"`
	TenantId   uuid.UUID `db:"tenant_id"`

	IpAddress *string         `db:"ip_address"`
	UserAgent *string         `db:"user_agent"`
	OldValues json.RawMessage `db:"old_values"`
	NewValues json.RawMessage `db:"new_values"`
	Metadata  json.RawMessage `db:"metadata"`

	EventHash    string `db:"event_hash"`
	PreviousHash string `db:"previous_hash"`

	CreatedAt time.Time `db:"created_at"`
}

const TABLE_AUDIT_EVENTS = "audit_events"

var SelectAuditEventColumns = utils.ColumnList[DbAuditEvent]()

func AdaptAuditEvent(db DbAuditEvent) (models.AuditEvent, error) {
	return models.AuditEvent{
		SequenceNumber: db.SequenceNumber,
		EventType:      db.EventType,
		EntityType:     db.EntityType,
		EntityId:       db.EntityId,
		ActorId:        db.ActorId,
		TenantId:       db.TenantId,
		IpAddress:      db.IpAddress,
		UserAgent:      db.UserAgent,
		OldValues:      db.OldValues,
		NewValues:      db.NewValues,
		Metadata:       db.Metadata,
		EventHash:      db.EventHash,
		PreviousHash:   db.PreviousHash,
		CreatedAt:      db.CreatedAt,
	}, nil
}
