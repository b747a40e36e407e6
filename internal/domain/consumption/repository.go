package consumption

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new substance consumption case.
	Create(ctx context.Context, c *SubstanceConsumption) error

	// GetByID retrieves a case by primary key. Returns ErrConsumptionNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*SubstanceConsumption, error)

	// GetByPatientID returns the patient's single consumption case, or
	// ErrConsumptionNotFound when none exists.
	GetByPatientID(ctx context.Context, patientID uuid.UUID) (*SubstanceConsumption, error)

	// Update applies partial updates to an existing case.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateCommand) (*SubstanceConsumption, error)

	// ListByPatient returns all cases for a patient, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*SubstanceConsumption, error)

	// Count returns the number of live cases.
	Count(ctx context.Context) (int64, error)
}
