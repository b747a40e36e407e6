package followup

import (
	"time"

	"github.com/google/uuid"
)

// CaseType tags which case table a follow-up belongs to.
type CaseType string

const (
	CaseMentalDisorder       CaseType = "mental_disorder"
	CaseSuicideAttempt       CaseType = "suicide_attempt"
	CaseSubstanceConsumption CaseType = "substance_consumption"
)

func (t CaseType) IsValid() bool {
	switch t {
	case CaseMentalDisorder, CaseSuicideAttempt, CaseSubstanceConsumption:
		return true
	}
	return false
}

// CaseRef points a follow-up at exactly one case record. The tag plus id pair
// replaces a free-form polymorphic reference, so the set of valid targets is
// closed at compile time.
type CaseRef struct {
	Type CaseType  `gorm:"column:case_type;type:varchar(30);not null;uniqueIndex:idx_followups_case_period,priority:1;index"`
	ID   uuid.UUID `gorm:"column:case_id;type:uuid;not null;uniqueIndex:idx_followups_case_period,priority:2"`
}

type Status string

const (
	StatusPending      Status = "pending"
	StatusCompleted    Status = "completed"
	StatusNotContacted Status = "not_contacted"
	StatusRefused      Status = "refused"
	StatusRescheduled  Status = "rescheduled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusNotContacted, StatusRefused, StatusRescheduled:
		return true
	}
	return false
}

// ContactMethod records how the patient was reached.
type ContactMethod string

const (
	ContactTelefono   ContactMethod = "Teléfono"
	ContactVisita     ContactMethod = "Visita Domiciliaria"
	ContactPresencial ContactMethod = "Consulta Presencial"
	ContactWhatsApp   ContactMethod = "WhatsApp"
	ContactCorreo     ContactMethod = "Correo Electrónico"
)

// MonthlyFollowup is one month's follow-up entry for a case. The unique index
// over (case_type, case_id, year, month) makes generation idempotent: at most
// one entry per case per period.
type MonthlyFollowup struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	Case CaseRef `gorm:"embedded"`

	FollowupDate time.Time `gorm:"column:followup_date;not null;index"`
	Year         int       `gorm:"column:year;type:smallint;not null;uniqueIndex:idx_followups_case_period,priority:3"`
	Month        int       `gorm:"column:month;type:smallint;not null;uniqueIndex:idx_followups_case_period,priority:4"`

	Description string `gorm:"column:description;type:varchar(1000);not null"`

	Status        Status         `gorm:"column:status;type:varchar(20);default:'pending';index"`
	ContactMethod *ContactMethod `gorm:"column:contact_method;type:varchar(30)"`
	ActionsTaken  []string       `gorm:"column:actions_taken;serializer:json"`
	NextFollowup  *time.Time     `gorm:"column:next_followup"`

	PerformedBy uuid.UUID `gorm:"column:performed_by;type:uuid;not null;index"`
}

func (MonthlyFollowup) TableName() string {
	return "clinical.monthly_followups"
}
