package attempt

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new suicide attempt case.
	Create(ctx context.Context, a *SuicideAttempt) error

	// GetByID retrieves a case by primary key. Returns ErrAttemptNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*SuicideAttempt, error)

	// GetByPatientID returns the patient's single suicide attempt case, or
	// ErrAttemptNotFound when none exists.
	GetByPatientID(ctx context.Context, patientID uuid.UUID) (*SuicideAttempt, error)

	// Update applies partial updates to an existing case.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateCommand) (*SuicideAttempt, error)

	// ListByPatient returns all cases for a patient, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*SuicideAttempt, error)

	// Count returns the number of live cases.
	Count(ctx context.Context) (int64, error)
}
