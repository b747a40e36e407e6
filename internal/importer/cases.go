package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
)

// The registry keeps at most one case of each type per patient: a later row
// for the same document merges into the existing case instead of opening a
// second episode. Questionable for genuinely repeated episodes, but it is
// the established reconciliation contract.

type disorderInput struct {
	admissionDate        *time.Time
	admissionType        disorder.AdmissionType
	admissionVia         disorder.AdmissionVia
	serviceArea          string
	diagnosisCode        string
	diagnosisDate        *time.Time
	diagnosisDescription string
	diagnosisType        disorder.DiagnosisType
	observation          string
}

func (imp *Importer) upsertDisorderCase(ctx context.Context, patientID uuid.UUID, in disorderInput, operator uuid.UUID, stats *Stats) (*disorder.MentalDisorder, error) {
	existing, err := imp.repos.Disorders.GetByPatientID(ctx, patientID)
	switch {
	case err == nil:
		cmd := &disorder.UpdateCommand{
			AdmissionDate: in.admissionDate,
			AdmissionType: &in.admissionType,
			AdmissionVia:  &in.admissionVia,
			DiagnosisDate: in.diagnosisDate,
			DiagnosisType: &in.diagnosisType,
		}
		setIfPresent(&cmd.ServiceArea, in.serviceArea)
		setIfPresent(&cmd.DiagnosisCode, Truncate(in.diagnosisCode, 10))
		setIfPresent(&cmd.DiagnosisDescription, in.diagnosisDescription)
		setIfPresent(&cmd.AdditionalObservation, in.observation)

		updated, err := imp.repos.Disorders.Update(ctx, existing.ID, cmd)
		if err != nil {
			return nil, fmt.Errorf("updating mental disorder case: %w", err)
		}
		return updated, nil

	case errors.Is(err, disorder.ErrDisorderNotFound):
		d := &disorder.MentalDisorder{
			PatientID:             patientID,
			AdmissionDate:         imp.dateOrNow(in.admissionDate),
			AdmissionType:         in.admissionType,
			AdmissionVia:          in.admissionVia,
			ServiceArea:           Truncate(in.serviceArea, 200),
			DiagnosisCode:         Truncate(in.diagnosisCode, 10),
			DiagnosisDate:         imp.dateOrNow(in.diagnosisDate),
			DiagnosisDescription:  in.diagnosisDescription,
			DiagnosisType:         in.diagnosisType,
			AdditionalObservation: in.observation,
			Status:                disorder.StatusActive,
			CreatedBy:             operator,
		}
		if err := imp.repos.Disorders.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("creating mental disorder case: %w", err)
		}
		stats.CasesCreated++
		return d, nil

	default:
		return nil, fmt.Errorf("looking up mental disorder case: %w", err)
	}
}

type attemptInput struct {
	eventDate     *time.Time
	weekNumber    *int
	admissionVia  attempt.AdmissionVia
	benefitPlan   string
	attemptNumber int
	triggerFactor string
	riskFactors   []string
	mechanism     string
	observation   string
}

const notSpecified = "No especificado"

func (imp *Importer) upsertAttemptCase(ctx context.Context, patientID uuid.UUID, in attemptInput, operator uuid.UUID, stats *Stats) (*attempt.SuicideAttempt, error) {
	trigger := in.triggerFactor
	if trigger == "" {
		trigger = notSpecified
	}
	mechanism := in.mechanism
	if mechanism == "" {
		mechanism = notSpecified
	}

	existing, err := imp.repos.Attempts.GetByPatientID(ctx, patientID)
	switch {
	case err == nil:
		cmd := &attempt.UpdateCommand{
			EventDate:     in.eventDate,
			WeekNumber:    in.weekNumber,
			AdmissionVia:  &in.admissionVia,
			AttemptNumber: &in.attemptNumber,
			TriggerFactor: &trigger,
			Mechanism:     &mechanism,
		}
		setIfPresent(&cmd.BenefitPlan, in.benefitPlan)
		setIfPresent(&cmd.AdditionalObservation, in.observation)
		if len(in.riskFactors) > 0 {
			cmd.RiskFactors = &in.riskFactors
		}

		updated, err := imp.repos.Attempts.Update(ctx, existing.ID, cmd)
		if err != nil {
			return nil, fmt.Errorf("updating suicide attempt case: %w", err)
		}
		return updated, nil

	case errors.Is(err, attempt.ErrAttemptNotFound):
		a := &attempt.SuicideAttempt{
			PatientID:             patientID,
			EventDate:             imp.dateOrNow(in.eventDate),
			WeekNumber:            in.weekNumber,
			AdmissionVia:          in.admissionVia,
			BenefitPlan:           Truncate(in.benefitPlan, 200),
			AttemptNumber:         in.attemptNumber,
			TriggerFactor:         trigger,
			RiskFactors:           in.riskFactors,
			Mechanism:             mechanism,
			AdditionalObservation: in.observation,
			Status:                attempt.StatusActive,
			CreatedBy:             operator,
		}
		if err := imp.repos.Attempts.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("creating suicide attempt case: %w", err)
		}
		stats.CasesCreated++
		return a, nil

	default:
		return nil, fmt.Errorf("looking up suicide attempt case: %w", err)
	}
}

type consumptionInput struct {
	admissionDate *time.Time
	admissionVia  consumption.AdmissionVia
	diagnosis     string
	substances    []string
	level         consumption.Level
	observation   string
}

func (imp *Importer) upsertConsumptionCase(ctx context.Context, patientID uuid.UUID, in consumptionInput, operator uuid.UUID, stats *Stats) (*consumption.SubstanceConsumption, error) {
	diagnosis := in.diagnosis
	if diagnosis == "" {
		diagnosis = "Sin diagnóstico específico"
	}
	substances := in.substances
	if len(substances) == 0 {
		// downstream consumers always get at least one entry to display
		substances = []string{"No especificada"}
	}

	existing, err := imp.repos.Consumptions.GetByPatientID(ctx, patientID)
	switch {
	case err == nil:
		diag := Truncate(diagnosis, 500)
		cmd := &consumption.UpdateCommand{
			AdmissionDate:    in.admissionDate,
			AdmissionVia:     &in.admissionVia,
			Diagnosis:        &diag,
			SubstancesUsed:   &substances,
			ConsumptionLevel: &in.level,
		}
		setIfPresent(&cmd.AdditionalObservation, in.observation)

		updated, err := imp.repos.Consumptions.Update(ctx, existing.ID, cmd)
		if err != nil {
			return nil, fmt.Errorf("updating substance consumption case: %w", err)
		}
		return updated, nil

	case errors.Is(err, consumption.ErrConsumptionNotFound):
		c := &consumption.SubstanceConsumption{
			PatientID:             patientID,
			AdmissionDate:         imp.dateOrNow(in.admissionDate),
			AdmissionVia:          in.admissionVia,
			Diagnosis:             Truncate(diagnosis, 500),
			SubstancesUsed:        substances,
			ConsumptionLevel:      in.level,
			AdditionalObservation: in.observation,
			Status:                consumption.StatusActive,
			CreatedBy:             operator,
		}
		if err := imp.repos.Consumptions.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("creating substance consumption case: %w", err)
		}
		stats.CasesCreated++
		return c, nil

	default:
		return nil, fmt.Errorf("looking up substance consumption case: %w", err)
	}
}

// dateOrNow keeps the not-null date invariants satisfiable for rows whose
// date cells cannot be parsed. Fabricated, same policy as the birth date
// default.
func (imp *Importer) dateOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return imp.now()
}
