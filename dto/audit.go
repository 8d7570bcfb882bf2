package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/pure_utils"
)

type AuditEventFilters struct {
	TenantId   uuid.UUID
	From       *time.Time
	To         *time.Time
	EventType  string
	EntityType string
	EntityId   string
	ActorId    string
}

type AuditEvent struct {
	SequenceNumber int64 `json:"sequence_number"`

	EventType  string    `json:"event_type"`
	EntityType string    `json:"entity_type"`
	EntityId   string    `json:"entity_id"`
	ActorId    uuid.UUID `json:"actor_id"`
	TenantId   uuid.UUID `json:"tenant_id"`

	IpAddress *string         `json:"ip_address,omitempty"`
	UserAgent *string         `json:"user_agent,omitempty"`
	OldValues json.RawMessage `json:"old_values,omitempty"`
	NewValues json.RawMessage `json:"new_values,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`

	EventHash    string `json:"event_hash"`
	PreviousHash string `json:"previous_hash"`

	CreatedAt time.Time `json:"created_at"`
}

func AdaptAuditEvent(m models.AuditEvent) AuditEvent {
	return AuditEvent{
		SequenceNumber: m.SequenceNumber,
		EventType:      m.EventType,
		EntityType:     m.EntityType,
		EntityId:       m.EntityId,
		ActorId:        m.ActorId,
		TenantId:       m.TenantId,
		IpAddress:      m.IpAddress,
		UserAgent:      m.UserAgent,
		// Let's watch out, we could expose some sensitive data here.
		OldValues:    m.OldValues,
		NewValues:    m.NewValues,
		Metadata:     m.Metadata,
		EventHash:    m.EventHash,
		PreviousHash: m.PreviousHash,
		CreatedAt:    m.CreatedAt,
	}
}

type AuditRoot struct {
	TenantId      uuid.UUID `json:"tenant_id"`
	Date          string    `json:"date"`
	MerkleRoot    string    `json:"merkle_root"`
	EventCount    int       `json:"event_count"`
	FirstSequence int64     `json:"first_sequence"`
	LastSequence  int64     `json:"last_sequence"`
	CreatedAt     time.Time `json:"created_at"`
}

func AdaptAuditRoot(m models.AuditRoot) AuditRoot {
	return AuditRoot{
		TenantId:      m.TenantId,
		Date:          m.Date.Format(time.DateOnly),
		MerkleRoot:    m.MerkleRoot,
		EventCount:    m.EventCount,
		FirstSequence: m.FirstSequence,
		LastSequence:  m.LastSequence,
		CreatedAt:     m.CreatedAt,
	}
}

type AuditVerification struct {
	Id         uuid.UUID             `json:"id"`
	TenantId   uuid.UUID             `json:"tenant_id"`
	VerifiedBy uuid.UUID             `json:"verified_by"`
	RangeStart string                `json:"range_start"`
	RangeEnd   string                `json:"range_end"`
	Result     string                `json:"result"`
	Findings   []models.AuditFinding `json:"findings"`
	CreatedAt  time.Time             `json:"created_at"`
}

func AdaptAuditVerification(m models.AuditVerification) AuditVerification {
	return AuditVerification{
		Id:         m.Id,
		TenantId:   m.TenantId,
		VerifiedBy: m.VerifiedBy,
		RangeStart: m.RangeStart.Format(time.DateOnly),
		RangeEnd:   m.RangeEnd.Format(time.DateOnly),
		Result:     string(m.Result),
		Findings:   m.Findings,
		CreatedAt:  m.CreatedAt,
	}
}

type PaginatedAuditEvents struct {
	Total  int          `json:"total"`
	Events []AuditEvent `json:"events"`
}

func AdaptPaginatedAuditEvents(events []models.AuditEvent, total int) PaginatedAuditEvents {
	return PaginatedAuditEvents{
		Total:  total,
		Events: pure_utils.Map(events, AdaptAuditEvent),
	}
}
