package attempt

import (
	"time"

	"github.com/google/uuid"
)

// AdmissionVia extends the clinical channels with COMUNIDAD: event 356
// notifications can originate from community reporting.
type AdmissionVia string

const (
	ViaUrgencias       AdmissionVia = "URGENCIAS"
	ViaConsultaExterna AdmissionVia = "CONSULTA_EXTERNA"
	ViaHospitalizacion AdmissionVia = "HOSPITALIZACION"
	ViaReferencia      AdmissionVia = "REFERENCIA"
	ViaComunidad       AdmissionVia = "COMUNIDAD"
)

func (v AdmissionVia) IsValid() bool {
	switch v {
	case ViaUrgencias, ViaConsultaExterna, ViaHospitalizacion, ViaReferencia, ViaComunidad:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusResolved Status = "resolved"
)

// SuicideAttempt is one suicide-attempt case (SIVIGILA event 356). One case
// per patient; AttemptNumber tracks repeated events within it.
type SuicideAttempt struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	EventDate  time.Time `gorm:"column:event_date;not null;index"`
	WeekNumber *int      `gorm:"column:week_number;type:smallint"` // epidemiological week

	AdmissionVia AdmissionVia `gorm:"column:admission_via;type:varchar(20);not null"`
	BenefitPlan  string       `gorm:"column:benefit_plan;type:varchar(200)"`

	AttemptNumber int      `gorm:"column:attempt_number;not null;default:1;index"`
	TriggerFactor string   `gorm:"column:trigger_factor;type:text"`
	RiskFactors   []string `gorm:"column:risk_factors;serializer:json"`
	Mechanism     string   `gorm:"column:mechanism;type:text"`

	AdditionalObservation string `gorm:"column:additional_observation;type:text"`

	Status    Status    `gorm:"column:status;type:varchar(20);default:'active';index"`
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (SuicideAttempt) TableName() string {
	return "clinical.suicide_attempts"
}

// UpdateCommand applies partial updates. Nil fields are left untouched.
type UpdateCommand struct {
	EventDate             *time.Time
	WeekNumber            *int
	AdmissionVia          *AdmissionVia
	BenefitPlan           *string
	AttemptNumber         *int
	TriggerFactor         *string
	RiskFactors           *[]string
	Mechanism             *string
	AdditionalObservation *string
	Status                *Status
}
