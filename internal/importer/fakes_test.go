package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
	"github.com/saludmental/mindtrack/internal/domain/followup"
	"github.com/saludmental/mindtrack/internal/domain/patient"
)

// In-memory repositories for engine tests. They mirror the persistence
// contract the engine relies on: sentinel not-found errors, partial updates
// via nil-skipping commands, and the one-entry-per-period check.

type memPatients struct {
	byID    map[uuid.UUID]*patient.Patient
	order   []uuid.UUID
	failDoc string // Create fails for this document number
}

func newMemPatients() *memPatients {
	return &memPatients{byID: map[uuid.UUID]*patient.Patient{}}
}

func (m *memPatients) Create(_ context.Context, p *patient.Patient) error {
	if p.DocumentNumber == m.failDoc {
		return fmt.Errorf("simulated insert failure")
	}
	for _, existing := range m.byID {
		if existing.DocumentType == p.DocumentType && existing.DocumentNumber == p.DocumentNumber {
			return patient.ErrPatientAlreadyExists
		}
	}
	p.ID = uuid.New()
	m.byID[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memPatients) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, patient.ErrPatientNotFound
}

func (m *memPatients) GetByDocumentNumber(_ context.Context, documentNumber string) (*patient.Patient, error) {
	for _, id := range m.order {
		if p := m.byID[id]; p.DocumentNumber == documentNumber {
			return p, nil
		}
	}
	return nil, patient.ErrPatientNotFound
}

func (m *memPatients) Update(_ context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	if cmd.DocumentType != nil {
		p.DocumentType = *cmd.DocumentType
	}
	if cmd.FullName != nil {
		p.FullName = *cmd.FullName
	}
	if cmd.Gender != nil {
		p.Gender = cmd.Gender
	}
	if cmd.BirthDate != nil {
		p.BirthDate = *cmd.BirthDate
	}
	if cmd.Phone != nil {
		p.Phone = *cmd.Phone
	}
	if cmd.Address != nil {
		p.Address = *cmd.Address
	}
	if cmd.Neighborhood != nil {
		p.Neighborhood = *cmd.Neighborhood
	}
	if cmd.Village != nil {
		p.Village = *cmd.Village
	}
	if cmd.EPSCode != nil {
		p.EPSCode = *cmd.EPSCode
	}
	if cmd.EPSName != nil {
		p.EPSName = *cmd.EPSName
	}
	if cmd.Status != nil {
		p.Status = *cmd.Status
	}
	return p, nil
}

func (m *memPatients) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return patient.ErrPatientNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memPatients) List(_ context.Context, q *patient.ListPatientsQuery) (*patient.PagedPatients, error) {
	var out []*patient.Patient
	for _, id := range m.order {
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return &patient.PagedPatients{
		Patients:   out,
		TotalCount: int64(len(out)),
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: 1,
	}, nil
}

func (m *memPatients) Count(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

type memDisorders struct {
	byID map[uuid.UUID]*disorder.MentalDisorder
}

func newMemDisorders() *memDisorders {
	return &memDisorders{byID: map[uuid.UUID]*disorder.MentalDisorder{}}
}

func (m *memDisorders) Create(_ context.Context, d *disorder.MentalDisorder) error {
	d.ID = uuid.New()
	m.byID[d.ID] = d
	return nil
}

func (m *memDisorders) GetByID(_ context.Context, id uuid.UUID) (*disorder.MentalDisorder, error) {
	if d, ok := m.byID[id]; ok {
		return d, nil
	}
	return nil, disorder.ErrDisorderNotFound
}

func (m *memDisorders) GetByPatientID(_ context.Context, patientID uuid.UUID) (*disorder.MentalDisorder, error) {
	for _, d := range m.byID {
		if d.PatientID == patientID {
			return d, nil
		}
	}
	return nil, disorder.ErrDisorderNotFound
}

func (m *memDisorders) Update(_ context.Context, id uuid.UUID, cmd *disorder.UpdateCommand) (*disorder.MentalDisorder, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, disorder.ErrDisorderNotFound
	}
	if cmd.AdmissionDate != nil {
		d.AdmissionDate = *cmd.AdmissionDate
	}
	if cmd.AdmissionType != nil {
		d.AdmissionType = *cmd.AdmissionType
	}
	if cmd.AdmissionVia != nil {
		d.AdmissionVia = *cmd.AdmissionVia
	}
	if cmd.ServiceArea != nil {
		d.ServiceArea = *cmd.ServiceArea
	}
	if cmd.DiagnosisCode != nil {
		d.DiagnosisCode = *cmd.DiagnosisCode
	}
	if cmd.DiagnosisDate != nil {
		d.DiagnosisDate = *cmd.DiagnosisDate
	}
	if cmd.DiagnosisDescription != nil {
		d.DiagnosisDescription = *cmd.DiagnosisDescription
	}
	if cmd.DiagnosisType != nil {
		d.DiagnosisType = *cmd.DiagnosisType
	}
	if cmd.AdditionalObservation != nil {
		d.AdditionalObservation = *cmd.AdditionalObservation
	}
	if cmd.Status != nil {
		d.Status = *cmd.Status
	}
	return d, nil
}

func (m *memDisorders) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*disorder.MentalDisorder, error) {
	var out []*disorder.MentalDisorder
	for _, d := range m.byID {
		if d.PatientID == patientID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDisorders) Count(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

type memAttempts struct {
	byID map[uuid.UUID]*attempt.SuicideAttempt
}

func newMemAttempts() *memAttempts {
	return &memAttempts{byID: map[uuid.UUID]*attempt.SuicideAttempt{}}
}

func (m *memAttempts) Create(_ context.Context, a *attempt.SuicideAttempt) error {
	a.ID = uuid.New()
	m.byID[a.ID] = a
	return nil
}

func (m *memAttempts) GetByID(_ context.Context, id uuid.UUID) (*attempt.SuicideAttempt, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, attempt.ErrAttemptNotFound
}

func (m *memAttempts) GetByPatientID(_ context.Context, patientID uuid.UUID) (*attempt.SuicideAttempt, error) {
	for _, a := range m.byID {
		if a.PatientID == patientID {
			return a, nil
		}
	}
	return nil, attempt.ErrAttemptNotFound
}

func (m *memAttempts) Update(_ context.Context, id uuid.UUID, cmd *attempt.UpdateCommand) (*attempt.SuicideAttempt, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, attempt.ErrAttemptNotFound
	}
	if cmd.EventDate != nil {
		a.EventDate = *cmd.EventDate
	}
	if cmd.WeekNumber != nil {
		a.WeekNumber = cmd.WeekNumber
	}
	if cmd.AdmissionVia != nil {
		a.AdmissionVia = *cmd.AdmissionVia
	}
	if cmd.BenefitPlan != nil {
		a.BenefitPlan = *cmd.BenefitPlan
	}
	if cmd.AttemptNumber != nil {
		a.AttemptNumber = *cmd.AttemptNumber
	}
	if cmd.TriggerFactor != nil {
		a.TriggerFactor = *cmd.TriggerFactor
	}
	if cmd.RiskFactors != nil {
		a.RiskFactors = *cmd.RiskFactors
	}
	if cmd.Mechanism != nil {
		a.Mechanism = *cmd.Mechanism
	}
	if cmd.AdditionalObservation != nil {
		a.AdditionalObservation = *cmd.AdditionalObservation
	}
	if cmd.Status != nil {
		a.Status = *cmd.Status
	}
	return a, nil
}

func (m *memAttempts) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*attempt.SuicideAttempt, error) {
	var out []*attempt.SuicideAttempt
	for _, a := range m.byID {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAttempts) Count(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

type memConsumptions struct {
	byID map[uuid.UUID]*consumption.SubstanceConsumption
}

func newMemConsumptions() *memConsumptions {
	return &memConsumptions{byID: map[uuid.UUID]*consumption.SubstanceConsumption{}}
}

func (m *memConsumptions) Create(_ context.Context, c *consumption.SubstanceConsumption) error {
	c.ID = uuid.New()
	m.byID[c.ID] = c
	return nil
}

func (m *memConsumptions) GetByID(_ context.Context, id uuid.UUID) (*consumption.SubstanceConsumption, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, consumption.ErrConsumptionNotFound
}

func (m *memConsumptions) GetByPatientID(_ context.Context, patientID uuid.UUID) (*consumption.SubstanceConsumption, error) {
	for _, c := range m.byID {
		if c.PatientID == patientID {
			return c, nil
		}
	}
	return nil, consumption.ErrConsumptionNotFound
}

func (m *memConsumptions) Update(_ context.Context, id uuid.UUID, cmd *consumption.UpdateCommand) (*consumption.SubstanceConsumption, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, consumption.ErrConsumptionNotFound
	}
	if cmd.AdmissionDate != nil {
		c.AdmissionDate = *cmd.AdmissionDate
	}
	if cmd.AdmissionVia != nil {
		c.AdmissionVia = *cmd.AdmissionVia
	}
	if cmd.Diagnosis != nil {
		c.Diagnosis = *cmd.Diagnosis
	}
	if cmd.SubstancesUsed != nil {
		c.SubstancesUsed = *cmd.SubstancesUsed
	}
	if cmd.ConsumptionLevel != nil {
		c.ConsumptionLevel = *cmd.ConsumptionLevel
	}
	if cmd.AdditionalObservation != nil {
		c.AdditionalObservation = *cmd.AdditionalObservation
	}
	if cmd.Status != nil {
		c.Status = *cmd.Status
	}
	return c, nil
}

func (m *memConsumptions) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*consumption.SubstanceConsumption, error) {
	var out []*consumption.SubstanceConsumption
	for _, c := range m.byID {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memConsumptions) Count(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

type periodKey struct {
	caseType followup.CaseType
	caseID   uuid.UUID
	year     int
	month    int
}

type memFollowups struct {
	byID     map[uuid.UUID]*followup.MonthlyFollowup
	byPeriod map[periodKey]uuid.UUID
	failAll  bool // Create fails unconditionally
}

func newMemFollowups() *memFollowups {
	return &memFollowups{
		byID:     map[uuid.UUID]*followup.MonthlyFollowup{},
		byPeriod: map[periodKey]uuid.UUID{},
	}
}

func (m *memFollowups) key(ref followup.CaseRef, year, month int) periodKey {
	return periodKey{caseType: ref.Type, caseID: ref.ID, year: year, month: month}
}

func (m *memFollowups) Create(_ context.Context, f *followup.MonthlyFollowup) error {
	if m.failAll {
		return fmt.Errorf("simulated insert failure")
	}
	k := m.key(f.Case, f.Year, f.Month)
	if _, ok := m.byPeriod[k]; ok {
		return fmt.Errorf("duplicate period")
	}
	f.ID = uuid.New()
	m.byID[f.ID] = f
	m.byPeriod[k] = f.ID
	return nil
}

func (m *memFollowups) GetByID(_ context.Context, id uuid.UUID) (*followup.MonthlyFollowup, error) {
	if f, ok := m.byID[id]; ok {
		return f, nil
	}
	return nil, followup.ErrFollowupNotFound
}

func (m *memFollowups) ExistsForPeriod(_ context.Context, ref followup.CaseRef, year, month int) (bool, error) {
	_, ok := m.byPeriod[m.key(ref, year, month)]
	return ok, nil
}

func (m *memFollowups) ListByCase(_ context.Context, ref followup.CaseRef) ([]*followup.MonthlyFollowup, error) {
	var out []*followup.MonthlyFollowup
	for _, f := range m.byID {
		if f.Case == ref {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFollowups) Count(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

func (m *memFollowups) CountByStatus(_ context.Context) (map[followup.Status]int64, error) {
	out := map[followup.Status]int64{}
	for _, f := range m.byID {
		out[f.Status]++
	}
	return out, nil
}
