package service

import (
	"context"
	"fmt"

	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
	"github.com/saludmental/mindtrack/internal/domain/followup"
	"github.com/saludmental/mindtrack/internal/domain/patient"
)

// RegistrySnapshot is a point-in-time count of every live record kind.
type RegistrySnapshot struct {
	Patients          int64                     `json:"patients"`
	Disorders         int64                     `json:"mental_disorders"`
	Attempts          int64                     `json:"suicide_attempts"`
	Consumptions      int64                     `json:"substance_consumptions"`
	Followups         int64                     `json:"monthly_followups"`
	FollowupsByStatus map[followup.Status]int64 `json:"followups_by_status"`
}

type StatsService struct {
	patients     patient.Repository
	disorders    disorder.Repository
	attempts     attempt.Repository
	consumptions consumption.Repository
	followups    followup.Repository
}

func NewStatsService(
	patients patient.Repository,
	disorders disorder.Repository,
	attempts attempt.Repository,
	consumptions consumption.Repository,
	followups followup.Repository,
) *StatsService {
	return &StatsService{
		patients:     patients,
		disorders:    disorders,
		attempts:     attempts,
		consumptions: consumptions,
		followups:    followups,
	}
}

// Snapshot counts every live record kind. Used by the stats endpoint and by
// the CLI to show the registry before and after a run.
func (s *StatsService) Snapshot(ctx context.Context) (*RegistrySnapshot, error) {
	snap := &RegistrySnapshot{}

	var err error
	if snap.Patients, err = s.patients.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting patients: %w", err)
	}
	if snap.Disorders, err = s.disorders.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting mental disorders: %w", err)
	}
	if snap.Attempts, err = s.attempts.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting suicide attempts: %w", err)
	}
	if snap.Consumptions, err = s.consumptions.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting substance consumptions: %w", err)
	}
	if snap.Followups, err = s.followups.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting follow-ups: %w", err)
	}
	if snap.FollowupsByStatus, err = s.followups.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("counting follow-ups by status: %w", err)
	}

	return snap, nil
}
