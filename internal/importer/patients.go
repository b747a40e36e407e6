package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saludmental/mindtrack/internal/domain/patient"
)

// patientInput is the normalized demographic slice of one workbook row.
// Empty strings and nil times mean the sheet did not provide the field;
// the mappers guarantee documentType and gender always carry a value.
type patientInput struct {
	documentNumber string
	documentType   patient.DocumentType
	fullName       string
	gender         patient.Gender
	birthDate      *time.Time
	phone          string
	address        string
	neighborhood   string
	village        string
	epsCode        string
	epsName        string
}

// defaultBirthYears backdates a missing birth date so the not-null invariant
// holds for dirty workbooks. Fabricated, and deliberately centralized here.
const defaultBirthYears = 30

// upsertPatient reconciles one row's demographics against the registry,
// keyed by document number alone. Absent fields never overwrite known data;
// present fields always do.
func (imp *Importer) upsertPatient(ctx context.Context, in patientInput, operator uuid.UUID, stats *Stats) (*patient.Patient, error) {
	existing, err := imp.repos.Patients.GetByDocumentNumber(ctx, in.documentNumber)
	switch {
	case err == nil:
		cmd := &patient.UpdatePatientCommand{
			DocumentType: &in.documentType,
			Gender:       &in.gender,
			BirthDate:    in.birthDate,
		}
		if in.fullName != "" {
			name := Truncate(in.fullName, 300)
			cmd.FullName = &name
		}
		setIfPresent(&cmd.Phone, in.phone)
		setIfPresent(&cmd.Address, in.address)
		setIfPresent(&cmd.Neighborhood, in.neighborhood)
		setIfPresent(&cmd.Village, in.village)
		setIfPresent(&cmd.EPSCode, in.epsCode)
		setIfPresent(&cmd.EPSName, in.epsName)

		updated, err := imp.repos.Patients.Update(ctx, existing.ID, cmd)
		if err != nil {
			return nil, fmt.Errorf("updating patient %s: %w", in.documentNumber, err)
		}
		stats.Updated++
		return updated, nil

	case errors.Is(err, patient.ErrPatientNotFound):
		if in.fullName == "" {
			return nil, fmt.Errorf("patient %s: missing full name", in.documentNumber)
		}

		birthDate := imp.now().AddDate(-defaultBirthYears, 0, 0)
		if in.birthDate != nil {
			birthDate = *in.birthDate
		}

		p := &patient.Patient{
			DocumentType:   in.documentType,
			DocumentNumber: in.documentNumber,
			FullName:       Truncate(in.fullName, 300),
			Gender:         &in.gender,
			BirthDate:      birthDate,
			Phone:          in.phone,
			Address:        in.address,
			Neighborhood:   in.neighborhood,
			Village:        in.village,
			EPSCode:        in.epsCode,
			EPSName:        in.epsName,
			Status:         patient.StatusActive,
			AssignedAt:     imp.now(),
			CreatedBy:      operator,
		}
		if err := imp.repos.Patients.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("creating patient %s: %w", in.documentNumber, err)
		}
		stats.Imported++
		return p, nil

	default:
		return nil, fmt.Errorf("looking up patient %s: %w", in.documentNumber, err)
	}
}

func setIfPresent(dst **string, value string) {
	if value != "" {
		*dst = &value
	}
}
