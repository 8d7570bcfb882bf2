package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/veridoc/veridoc-backend/models"
	"github.com/veridoc/veridoc-backend/utils"
)

type DbAuditVerification struct {
	Id         uuid.UUID `db:"id"`
	TenantId   uuid.UUID `db:"tenant_id"`
	VerifiedBy uuid.UUID `db:"verified_by"`

	RangeStart time.Time       `db:"range_start"`
	RangeEnd   time.Time       `db:"range_end"`
	Result     string          `db:"result"`
	Details    json.RawMessage `db:"details"`

	CreatedAt time.Time `db:"created_at"`
}

const TABLE_AUDIT_VERIFICATIONS = "audit_verifications"

var SelectAuditVerificationColumns = utils.ColumnList[DbAuditVerification]()

func AdaptAuditVerification(db DbAuditVerification) (models.AuditVerification, error) {
	findings := make([]models.AuditFinding, 0)
	if len(db.Details) > 0 {
		if err := json.Unmarshal(db.Details, &findings); err != nil {
			return models.AuditVerification{}, errors.Wrap(err, "unmarshal audit verification details")
		}
	}

	return models.AuditVerification{
		Id:         db.Id,
		TenantId:   db.TenantId,
		VerifiedBy: db.VerifiedBy,
		RangeStart: models.CalendarDay(db.RangeStart),
		RangeEnd:   models.CalendarDay(db.RangeEnd),
		Result:     models.VerificationResult(db.Result),
		Findings:   findings,
		CreatedAt:  db.CreatedAt,
	}, nil
}

func SerializeAuditFindings(findings []models.AuditFinding) (json.RawMessage, error) {
	if findings == nil {
		findings = make([]models.AuditFinding, 0)
	}
	details, err := json.Marshal(findings)
	if err != nil {
		return nil, errors.Wrap(err, "marshal audit verification details")
	}
	return details, nil
}
