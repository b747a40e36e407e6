package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saludmental/mindtrack/internal/domain/attempt"
)

type AttemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) Create(ctx context.Context, a *attempt.SuicideAttempt) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("inserting suicide attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*attempt.SuicideAttempt, error) {
	var a attempt.SuicideAttempt
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attempt.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("querying suicide attempt: %w", err)
	}
	return &a, nil
}

func (r *AttemptRepository) GetByPatientID(ctx context.Context, patientID uuid.UUID) (*attempt.SuicideAttempt, error) {
	var a attempt.SuicideAttempt
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND deleted_at IS NULL", patientID).
		Order("created_at ASC").
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attempt.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("querying suicide attempt by patient: %w", err)
	}
	return &a, nil
}

func (r *AttemptRepository) Update(ctx context.Context, id uuid.UUID, cmd *attempt.UpdateCommand) (*attempt.SuicideAttempt, error) {
	updates := map[string]any{}
	if cmd.EventDate != nil {
		updates["event_date"] = *cmd.EventDate
	}
	if cmd.WeekNumber != nil {
		updates["week_number"] = *cmd.WeekNumber
	}
	if cmd.AdmissionVia != nil {
		updates["admission_via"] = *cmd.AdmissionVia
	}
	if cmd.BenefitPlan != nil {
		updates["benefit_plan"] = *cmd.BenefitPlan
	}
	if cmd.AttemptNumber != nil {
		updates["attempt_number"] = *cmd.AttemptNumber
	}
	if cmd.TriggerFactor != nil {
		updates["trigger_factor"] = *cmd.TriggerFactor
	}
	if cmd.Mechanism != nil {
		updates["mechanism"] = *cmd.Mechanism
	}
	if cmd.AdditionalObservation != nil {
		updates["additional_observation"] = *cmd.AdditionalObservation
	}
	if cmd.Status != nil {
		updates["status"] = *cmd.Status
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&attempt.SuicideAttempt{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating suicide attempt: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, attempt.ErrAttemptNotFound
		}
	}

	// risk_factors goes through the model so the json serializer applies
	if cmd.RiskFactors != nil {
		err := r.db.WithContext(ctx).
			Model(&attempt.SuicideAttempt{ID: id}).
			Update("risk_factors", *cmd.RiskFactors).Error
		if err != nil {
			return nil, fmt.Errorf("updating risk factors: %w", err)
		}
	}

	return r.GetByID(ctx, id)
}

func (r *AttemptRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*attempt.SuicideAttempt, error) {
	var list []*attempt.SuicideAttempt
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND deleted_at IS NULL", patientID).
		Order("event_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing suicide attempts: %w", err)
	}
	return list, nil
}

func (r *AttemptRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&attempt.SuicideAttempt{}).
		Where("deleted_at IS NULL").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting suicide attempts: %w", err)
	}
	return n, nil
}
