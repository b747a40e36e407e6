package followup

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new follow-up entry.
	Create(ctx context.Context, f *MonthlyFollowup) error

	// GetByID retrieves a follow-up by primary key. Returns ErrFollowupNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*MonthlyFollowup, error)

	// ExistsForPeriod reports whether the case already has an entry for the
	// given year and month. The generator checks this before creating, keeping
	// re-imports idempotent.
	ExistsForPeriod(ctx context.Context, ref CaseRef, year, month int) (bool, error)

	// ListByCase returns all follow-ups for a case ordered by period.
	ListByCase(ctx context.Context, ref CaseRef) ([]*MonthlyFollowup, error)

	// Count returns the number of live follow-up records.
	Count(ctx context.Context) (int64, error)

	// CountByStatus returns live follow-up counts grouped by status.
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
