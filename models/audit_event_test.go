package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleAuditEvent() AuditEvent {
	return AuditEvent{
		SequenceNumber: 42,
		EventType:      "document.updated",
		EntityType:     "document",
		EntityId:       "doc-123",
		ActorId:        uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		TenantId:       uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		OldValues:      json.RawMessage(`{"title": "old"}`),
		NewValues:      json.RawMessage(`{"title": "new"}`),
		PreviousHash:   GenesisHash,
		CreatedAt:      time.Date(2026, 1, 10, 12, 30, 45, 123456000, time.UTC),
	}
}

func TestComputeEventHashIsDeterministic(t *testing.T) {
	event := sampleAuditEvent()

	first, err := ComputeEventHash(event)
	assert.NoError(t, err)
	second, err := ComputeEventHash(event)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestComputeEventHashIgnoresValueDocumentFormatting(t *testing.T) {
	event := sampleAuditEvent()
	event.NewValues = json.RawMessage(`{"status": "signed", "title": "contract"}`)

	reordered := event
	reordered.NewValues = json.RawMessage("{\"title\": \"contract\",\n  \"status\": \"signed\"}")

	expected, err := ComputeEventHash(event)
	assert.NoError(t, err)
	actual, err := ComputeEventHash(reordered)
	assert.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestComputeEventHashCoversEveryChainedField(t *testing.T) {
	reference, err := ComputeEventHash(sampleAuditEvent())
	assert.NoError(t, err)

	mutations := map[string]func(*AuditEvent){
		"sequence number": func(e *AuditEvent) { e.SequenceNumber = 43 },
		"event type":      func(e *AuditEvent) { e.EventType = "document.deleted" },
		"entity type":     func(e *AuditEvent) { e.EntityType = "folder" },
		"entity id":       func(e *AuditEvent) { e.EntityId = "doc-456" },
		"actor id": func(e *AuditEvent) {
			e.ActorId = uuid.MustParse("00000000-0000-0000-0000-000000000009")
		},
		"tenant id": func(e *AuditEvent) {
			e.TenantId = uuid.MustParse("00000000-0000-0000-0000-000000000009")
		},
		"created at":    func(e *AuditEvent) { e.CreatedAt = e.CreatedAt.Add(time.Microsecond) },
		"previous hash": func(e *AuditEvent) { e.PreviousHash = "deadbeef" },
		"old values":    func(e *AuditEvent) { e.OldValues = json.RawMessage(`{"title": "other"}`) },
		"new values":    func(e *AuditEvent) { e.NewValues = nil },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			event := sampleAuditEvent()
			mutate(&event)
			hash, err := ComputeEventHash(event)
			assert.NoError(t, err)
			assert.NotEqual(t, reference, hash)
		})
	}
}

func TestComputeEventHashExcludesMetadata(t *testing.T) {
	event := sampleAuditEvent()
	reference, err := ComputeEventHash(event)
	assert.NoError(t, err)

	event.Metadata = json.RawMessage(`{"note": "added after the fact"}`)
	hash, err := ComputeEventHash(event)
	assert.NoError(t, err)
	assert.Equal(t, reference, hash)
}

func TestComputeEventHashNormalizesTimezone(t *testing.T) {
	event := sampleAuditEvent()
	reference, err := ComputeEventHash(event)
	assert.NoError(t, err)

	event.CreatedAt = event.CreatedAt.In(time.FixedZone("CET", 3600))
	hash, err := ComputeEventHash(event)
	assert.NoError(t, err)
	assert.Equal(t, reference, hash)
}

func TestCreateAuditEventInputValidate(t *testing.T) {
	valid := CreateAuditEventInput{
		EventType:  "document.created",
		EntityType: "document",
		EntityId:   "doc-1",
		ActorId:    uuid.New(),
		TenantId:   uuid.New(),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateAuditEventInput)
	}{
		{"missing event type", func(i *CreateAuditEventInput) { i.EventType = "" }},
		{"missing entity type", func(i *CreateAuditEventInput) { i.EntityType = "" }},
		{"missing entity id", func(i *CreateAuditEventInput) { i.EntityId = "" }},
		{"missing actor id", func(i *CreateAuditEventInput) { i.ActorId = uuid.Nil }},
		{"missing tenant id", func(i *CreateAuditEventInput) { i.TenantId = uuid.Nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			err := input.Validate()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, BadParameterError))
		})
	}
}
