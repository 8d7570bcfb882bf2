package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/pure_utils"
)

// GenesisHash is the previous_hash sentinel of the first event in a tenant chain.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// AuditEvent is one immutable audit fact, hash-chained to its predecessor in
// the same tenant. Once written it is never updated or deleted; the rest of
// the system relies on that.
type AuditEvent struct {
	SequenceNumber int64

	EventType  string
	EntityType string
	EntityId   string
	ActorId    uuid.UUID
	TenantId   uuid.UUID

	IpAddress *string
	UserAgent *string
	OldValues json.RawMessage
	NewValues json.RawMessage
	Metadata  json.RawMessage

	EventHash    string
	PreviousHash string

	CreatedAt time.Time
}

type CreateAuditEventInput struct {
	EventType  string
	EntityType string
	EntityId   string
	ActorId    uuid.UUID
	TenantId   uuid.UUID

	IpAddress *string
	UserAgent *string
	OldValues json.RawMessage
	NewValues json.RawMessage
	Metadata  json.RawMessage
}

func (input CreateAuditEventInput) Validate() error {
	if input.EventType == "" {
		return errors.Wrap(BadParameterError, "audit event: event type is required")
	}
	if input.EntityType == "" {
		return errors.Wrap(BadParameterError, "audit event: entity type is required")
	}
	if input.EntityId == "" {
		return errors.Wrap(BadParameterError, "audit event: entity id is required")
	}
	if input.ActorId == uuid.Nil {
		return errors.Wrap(BadParameterError, "audit event: actor id is required")
	}
	if input.TenantId == uuid.Nil {
		return errors.Wrap(BadParameterError, "audit event: tenant id is required")
	}
	return nil
}

// Timestamps enter the hash at microsecond precision, which is what postgres
// stores. A fixed-width layout avoids RFC3339Nano trimming trailing zeros.
const auditEventTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// ComputeEventHash returns the canonical SHA256 digest of an event. It covers
// the audited fact in full: sequence number, type, entity, actor, tenant,
// timestamp, the value documents and the link to the predecessor, so any
// later change to one of those is detectable by recomputation. Metadata,
// ip address and user agent stay out of the digest: they are contextual
// annotations around the fact, and metadata may legitimately be written
// after the event is sealed.
func ComputeEventHash(event AuditEvent) (string, error) {
	oldValues, err := pure_utils.CanonicalJSON(event.OldValues)
	if err != nil {
		return "", errors.Wrap(err, "audit event hash: old values")
	}
	newValues, err := pure_utils.CanonicalJSON(event.NewValues)
	if err != nil {
		return "", errors.Wrap(err, "audit event hash: new values")
	}

	parts := []string{
		strconv.FormatInt(event.SequenceNumber, 10),
		event.EventType,
		event.EntityType,
		event.EntityId,
		event.ActorId.String(),
		event.TenantId.String(),
		event.CreatedAt.UTC().Format(auditEventTimeLayout),
		event.PreviousHash,
		string(oldValues),
		string(newValues),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:]), nil
}
