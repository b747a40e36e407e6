package disorder

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new mental disorder case.
	Create(ctx context.Context, d *MentalDisorder) error

	// GetByID retrieves a case by primary key. Returns ErrDisorderNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*MentalDisorder, error)

	// GetByPatientID returns the patient's single mental disorder case, or
	// ErrDisorderNotFound when none exists. The reconciliation keeps one case
	// per patient and type, so repeated rows merge rather than multiply.
	GetByPatientID(ctx context.Context, patientID uuid.UUID) (*MentalDisorder, error)

	// Update applies partial updates to an existing case.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateCommand) (*MentalDisorder, error)

	// ListByPatient returns all cases for a patient, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MentalDisorder, error)

	// Count returns the number of live cases.
	Count(ctx context.Context) (int64, error)
}
