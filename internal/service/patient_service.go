package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
	"github.com/saludmental/mindtrack/internal/domain/followup"
	"github.com/saludmental/mindtrack/internal/domain/patient"
)

// PatientService is the read side of the registry. Records enter through the
// workbook reconciliation, so this service only looks things up.
type PatientService struct {
	patients     patient.Repository
	disorders    disorder.Repository
	attempts     attempt.Repository
	consumptions consumption.Repository
	followups    followup.Repository
	log          *zap.Logger
}

func NewPatientService(
	patients patient.Repository,
	disorders disorder.Repository,
	attempts attempt.Repository,
	consumptions consumption.Repository,
	followups followup.Repository,
	log *zap.Logger,
) *PatientService {
	return &PatientService{
		patients:     patients,
		disorders:    disorders,
		attempts:     attempts,
		consumptions: consumptions,
		followups:    followups,
		log:          log,
	}
}

// CaseDetail pairs a case with its follow-up history.
type CaseDetail[T any] struct {
	Case      T                           `json:"case"`
	Followups []*followup.MonthlyFollowup `json:"followups"`
}

// PatientDetail is the full registry view of one patient: the record plus
// whichever of the three case types exist for it.
type PatientDetail struct {
	Patient     *patient.Patient                               `json:"patient"`
	Disorder    *CaseDetail[*disorder.MentalDisorder]          `json:"mental_disorder,omitempty"`
	Attempt     *CaseDetail[*attempt.SuicideAttempt]           `json:"suicide_attempt,omitempty"`
	Consumption *CaseDetail[*consumption.SubstanceConsumption] `json:"substance_consumption,omitempty"`
}

// GetPatient loads a patient with all cases and their follow-ups.
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*PatientDetail, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &PatientDetail{Patient: p}

	d, err := s.disorders.GetByPatientID(ctx, id)
	switch {
	case err == nil:
		fus, err := s.followups.ListByCase(ctx, followup.CaseRef{Type: followup.CaseMentalDisorder, ID: d.ID})
		if err != nil {
			return nil, fmt.Errorf("loading disorder follow-ups: %w", err)
		}
		detail.Disorder = &CaseDetail[*disorder.MentalDisorder]{Case: d, Followups: fus}
	case !errors.Is(err, disorder.ErrDisorderNotFound):
		return nil, fmt.Errorf("loading mental disorder case: %w", err)
	}

	a, err := s.attempts.GetByPatientID(ctx, id)
	switch {
	case err == nil:
		fus, err := s.followups.ListByCase(ctx, followup.CaseRef{Type: followup.CaseSuicideAttempt, ID: a.ID})
		if err != nil {
			return nil, fmt.Errorf("loading attempt follow-ups: %w", err)
		}
		detail.Attempt = &CaseDetail[*attempt.SuicideAttempt]{Case: a, Followups: fus}
	case !errors.Is(err, attempt.ErrAttemptNotFound):
		return nil, fmt.Errorf("loading suicide attempt case: %w", err)
	}

	c, err := s.consumptions.GetByPatientID(ctx, id)
	switch {
	case err == nil:
		fus, err := s.followups.ListByCase(ctx, followup.CaseRef{Type: followup.CaseSubstanceConsumption, ID: c.ID})
		if err != nil {
			return nil, fmt.Errorf("loading consumption follow-ups: %w", err)
		}
		detail.Consumption = &CaseDetail[*consumption.SubstanceConsumption]{Case: c, Followups: fus}
	case !errors.Is(err, consumption.ErrConsumptionNotFound):
		return nil, fmt.Errorf("loading substance consumption case: %w", err)
	}

	return detail, nil
}

// ListPatients is a paginated, filtered lookup. An exact document_number
// filter takes precedence over the fuzzy name search in the repository.
func (s *PatientService) ListPatients(ctx context.Context, q *patient.ListPatientsQuery) (*patient.PagedPatients, error) {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	return s.patients.List(ctx, q)
}
