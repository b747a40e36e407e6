package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
	"github.com/saludmental/mindtrack/internal/domain/followup"
	"github.com/saludmental/mindtrack/internal/domain/patient"
)

type countingPatients struct {
	patient.Repository
	n int64
}

func (s *countingPatients) Count(context.Context) (int64, error) { return s.n, nil }

type countingDisorders struct {
	disorder.Repository
	n int64
}

func (s *countingDisorders) Count(context.Context) (int64, error) { return s.n, nil }

type countingAttempts struct {
	attempt.Repository
	n int64
}

func (s *countingAttempts) Count(context.Context) (int64, error) { return s.n, nil }

type countingConsumptions struct {
	consumption.Repository
	n int64
}

func (s *countingConsumptions) Count(context.Context) (int64, error) { return s.n, nil }

type countingFollowups struct {
	followup.Repository
	n        int64
	byStatus map[followup.Status]int64
}

func (s *countingFollowups) Count(context.Context) (int64, error) { return s.n, nil }

func (s *countingFollowups) CountByStatus(context.Context) (map[followup.Status]int64, error) {
	return s.byStatus, nil
}

func TestStatsSnapshot(t *testing.T) {
	svc := NewStatsService(
		&countingPatients{n: 120},
		&countingDisorders{n: 80},
		&countingAttempts{n: 25},
		&countingConsumptions{n: 40},
		&countingFollowups{
			n: 300,
			byStatus: map[followup.Status]int64{
				followup.StatusCompleted: 280,
				followup.StatusPending:   20,
			},
		},
	)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(120), snap.Patients)
	assert.Equal(t, int64(80), snap.Disorders)
	assert.Equal(t, int64(25), snap.Attempts)
	assert.Equal(t, int64(40), snap.Consumptions)
	assert.Equal(t, int64(300), snap.Followups)
	assert.Equal(t, int64(280), snap.FollowupsByStatus[followup.StatusCompleted])
	assert.Equal(t, int64(20), snap.FollowupsByStatus[followup.StatusPending])
}
