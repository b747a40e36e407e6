package consumption

import (
	"time"

	"github.com/google/uuid"
)

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

// Level is the consumption risk classification. Values match the ASSIST-style
// wording the source registries use.
type Level string

const (
	LevelAltoRiesgo     Level = "Alto Riesgo"
	LevelRiesgoModerado Level = "Riesgo Moderado"
	LevelBajoRiesgo     Level = "Bajo Riesgo"
	LevelPerjudicial    Level = "Perjudicial"
)

func (l Level) IsValid() bool {
	switch l {
	case LevelAltoRiesgo, LevelRiesgoModerado, LevelBajoRiesgo, LevelPerjudicial:
		return true
	}
	return false
}

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusInTreatment Status = "in_treatment"
	StatusRecovered   Status = "recovered"
)

// SubstanceConsumption is one psychoactive substance consumption case.
// One case per patient; later rows merge into it.
type SubstanceConsumption struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	AdmissionDate time.Time    `gorm:"column:admission_date;not null;index"`
	AdmissionVia  AdmissionVia `gorm:"column:admission_via;type:varchar(20);not null"`

	Diagnosis        string   `gorm:"column:diagnosis;type:varchar(500);not null"`
	SubstancesUsed   []string `gorm:"column:substances_used;serializer:json"`
	ConsumptionLevel Level    `gorm:"column:consumption_level;type:varchar(20);default:'Bajo Riesgo';index"`

	AdditionalObservation string `gorm:"column:additional_observation;type:text"`

	Status    Status    `gorm:"column:status;type:varchar(20);default:'active';index"`
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (SubstanceConsumption) TableName() string {
	return "clinical.substance_consumptions"
}

// UpdateCommand applies partial updates. Nil fields are left untouched.
type UpdateCommand struct {
	AdmissionDate         *time.Time
	AdmissionVia          *AdmissionVia
	Diagnosis             *string
	SubstancesUsed        *[]string
	ConsumptionLevel      *Level
	AdditionalObservation *string
	Status                *Status
}
