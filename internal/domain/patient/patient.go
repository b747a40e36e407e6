package patient

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType is the Colombian identity document class. Values are the
// short codes the registry stores; workbook synonyms ("CEDULA DE CIUDADANIA")
// are mapped before they reach this type.
type DocumentType string

const (
	DocumentCC DocumentType = "CC" // cedula de ciudadania
	DocumentTI DocumentType = "TI" // tarjeta de identidad
	DocumentCE DocumentType = "CE" // cedula de extranjeria
	DocumentPA DocumentType = "PA" // pasaporte
	DocumentRC DocumentType = "RC" // registro civil
	DocumentMS DocumentType = "MS" // menor sin identificacion
	DocumentAS DocumentType = "AS" // adulto sin identificacion
	DocumentCN DocumentType = "CN" // certificado de nacido vivo
)

func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentCC, DocumentTI, DocumentCE, DocumentPA, DocumentRC, DocumentMS, DocumentAS, DocumentCN:
		return true
	}
	return false
}

// Gender keeps the Spanish values the source registries report.
type Gender string

const (
	GenderMasculino Gender = "Masculino"
	GenderFemenino  Gender = "Femenino"
	GenderOtro      Gender = "Otro"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMasculino, GenderFemenino, GenderOtro:
		return true
	}
	return false
}

// Status represents the lifecycle state of a patient record.
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusDischarged Status = "discharged"
)

type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft Delete

	DocumentType   DocumentType `gorm:"column:document_type;type:varchar(5);not null;uniqueIndex:idx_patients_document,priority:1"`
	DocumentNumber string       `gorm:"column:document_number;type:varchar(20);not null;uniqueIndex:idx_patients_document,priority:2;index"`
	FullName       string       `gorm:"column:full_name;type:varchar(300);not null"`
	Gender         *Gender      `gorm:"column:gender;type:varchar(20)"`
	BirthDate      time.Time    `gorm:"column:birth_date;not null"`

	Phone        string `gorm:"column:phone;type:varchar(50)"`
	Address      string `gorm:"column:address;type:text"`
	Neighborhood string `gorm:"column:neighborhood;type:varchar(200)"`
	Village      string `gorm:"column:village;type:varchar(200)"`

	EPSCode string `gorm:"column:eps_code;type:varchar(100)"`
	EPSName string `gorm:"column:eps_name;type:varchar(300)"`

	Status     Status    `gorm:"column:status;type:varchar(20);default:'active';index"`
	AssignedAt time.Time `gorm:"column:assigned_at;not null"`

	// Audit: who registered this patient
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) Age() int {
	now := time.Now()
	years := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		years--
	}
	return years
}

func (p *Patient) IsActive() bool {
	return p.Status == StatusActive && p.DeletedAt == nil
}

// UpdatePatientCommand applies partial updates. Nil fields are left untouched,
// so a workbook row with a blank phone never erases a known phone.
type UpdatePatientCommand struct {
	DocumentType *DocumentType
	FullName     *string
	Gender       *Gender
	BirthDate    *time.Time
	Phone        *string
	Address      *string
	Neighborhood *string
	Village      *string
	EPSCode      *string
	EPSName      *string
	Status       *Status
}

// ListPatientsQuery defines filtering and pagination for patient list queries.
type ListPatientsQuery struct {
	DocumentNumber string
	Search         string // substring match on full name
	Status         *Status
	Page           int
	PageSize       int
}

type PagedPatients struct {
	Patients   []*Patient
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
