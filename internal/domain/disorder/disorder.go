package disorder

import (
	"time"

	"github.com/google/uuid"
)

// AdmissionType classifies how the patient entered care.
type AdmissionType string

const (
	AdmissionAmbulatorio  AdmissionType = "AMBULATORIO"
	AdmissionHospitalario AdmissionType = "HOSPITALARIO"
	AdmissionUrgencias    AdmissionType = "URGENCIAS"
)

func (t AdmissionType) IsValid() bool {
	switch t {
	case AdmissionAmbulatorio, AdmissionHospitalario, AdmissionUrgencias:
		return true
	}
	return false
}

// AdmissionVia is the referral channel into the program.
type AdmissionVia string

const (
	ViaUrgencias       AdmissionVia = "URGENCIAS"
	ViaConsultaExterna AdmissionVia = "CONSULTA_EXTERNA"
	ViaHospitalizacion AdmissionVia = "HOSPITALIZACION"
	ViaReferencia      AdmissionVia = "REFERENCIA"
)

func (v AdmissionVia) IsValid() bool {
	switch v {
	case ViaUrgencias, ViaConsultaExterna, ViaHospitalizacion, ViaReferencia:
		return true
	}
	return false
}

type DiagnosisType string

const (
	DiagnosisPrincipal   DiagnosisType = "Diagnostico Principal"
	DiagnosisRelacionado DiagnosisType = "Diagnostico Relacionado"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusDischarged Status = "discharged"
)

// MentalDisorder is one mental-disorder case. The registry keeps a single
// case of this type per patient; later workbook rows merge into it.
type MentalDisorder struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	AdmissionDate time.Time     `gorm:"column:admission_date;not null;index"`
	AdmissionType AdmissionType `gorm:"column:admission_type;type:varchar(20);not null"`
	AdmissionVia  AdmissionVia  `gorm:"column:admission_via;type:varchar(20);not null"`
	ServiceArea   string        `gorm:"column:service_area;type:varchar(200)"`

	DiagnosisCode        string        `gorm:"column:diagnosis_code;type:varchar(10);not null;index"`
	DiagnosisDate        time.Time     `gorm:"column:diagnosis_date;not null"`
	DiagnosisDescription string        `gorm:"column:diagnosis_description;type:text;not null"`
	DiagnosisType        DiagnosisType `gorm:"column:diagnosis_type;type:varchar(30);default:'Diagnostico Principal'"`

	AdditionalObservation string `gorm:"column:additional_observation;type:text"`

	Status    Status    `gorm:"column:status;type:varchar(20);default:'active';index"`
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (MentalDisorder) TableName() string {
	return "clinical.mental_disorders"
}

// UpdateCommand applies partial updates. Nil fields are left untouched.
type UpdateCommand struct {
	AdmissionDate         *time.Time
	AdmissionType         *AdmissionType
	AdmissionVia          *AdmissionVia
	ServiceArea           *string
	DiagnosisCode         *string
	DiagnosisDate         *time.Time
	DiagnosisDescription  *string
	DiagnosisType         *DiagnosisType
	AdditionalObservation *string
	Status                *Status
}
