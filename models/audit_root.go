package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditRoot is the daily Merkle commitment over one tenant's events. There is
// at most one per (tenant, calendar date); days without events have none.
// Dates are calendar days in UTC.
type AuditRoot struct {
	Id       uuid.UUID
	TenantId uuid.UUID

	Date          time.Time
	MerkleRoot    string
	EventCount    int
	FirstSequence int64
	LastSequence  int64

	CreatedAt time.Time
}

// CalendarDay truncates t to its UTC calendar date.
func CalendarDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
