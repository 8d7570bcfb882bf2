package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationResult string

const (
	VerificationPassed VerificationResult = "PASSED"
	VerificationFailed VerificationResult = "FAILED"
)

type AuditFindingKind string

const (
	// AuditFindingHashError: a stored event no longer hashes to its event_hash
	// (record-level tampering).
	AuditFindingHashError AuditFindingKind = "HASH_ERROR"
	// AuditFindingChainError: an event's previous_hash does not match its
	// predecessor (deletion, reordering or out-of-band insertion).
	AuditFindingChainError AuditFindingKind = "CHAIN_ERROR"
	// AuditFindingMerkleError: a stored daily root does not match the root
	// recomputed over the day's events (bulk tampering or forged commitment).
	AuditFindingMerkleError AuditFindingKind = "MERKLE_ERROR"
)

// AuditFinding is one discrepancy surfaced by a verification run. Findings are
// data, not errors: discovering tampering is the verifier doing its job.
type AuditFinding struct {
	Kind           AuditFindingKind `json:"kind"`
	SequenceNumber int64            `json:"sequence_number,omitempty"`
	Date           string           `json:"date,omitempty"`
	Expected       string           `json:"expected"`
	Actual         string           `json:"actual"`
}

// AuditVerification is the permanent record of one verification run, failed
// runs included.
type AuditVerification struct {
	Id         uuid.UUID
	TenantId   uuid.UUID
	VerifiedBy uuid.UUID

	RangeStart time.Time
	RangeEnd   time.Time

	Result   VerificationResult
	Findings []AuditFinding

	CreatedAt time.Time
}
