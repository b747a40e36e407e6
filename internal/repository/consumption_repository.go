package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saludmental/mindtrack/internal/domain/consumption"
)

type ConsumptionRepository struct {
	db *gorm.DB
}

func NewConsumptionRepository(db *gorm.DB) *ConsumptionRepository {
	return &ConsumptionRepository{db: db}
}

func (r *ConsumptionRepository) Create(ctx context.Context, c *consumption.SubstanceConsumption) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("inserting substance consumption: %w", err)
	}
	return nil
}

func (r *ConsumptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*consumption.SubstanceConsumption, error) {
	var c consumption.SubstanceConsumption
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consumption.ErrConsumptionNotFound
		}
		return nil, fmt.Errorf("querying substance consumption: %w", err)
	}
	return &c, nil
}

func (r *ConsumptionRepository) GetByPatientID(ctx context.Context, patientID uuid.UUID) (*consumption.SubstanceConsumption, error) {
	var c consumption.SubstanceConsumption
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND deleted_at IS NULL", patientID).
		Order("created_at ASC").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consumption.ErrConsumptionNotFound
		}
		return nil, fmt.Errorf("querying substance consumption by patient: %w", err)
	}
	return &c, nil
}

func (r *ConsumptionRepository) Update(ctx context.Context, id uuid.UUID, cmd *consumption.UpdateCommand) (*consumption.SubstanceConsumption, error) {
	updates := map[string]any{}
	if cmd.AdmissionDate != nil {
		updates["admission_date"] = *cmd.AdmissionDate
	}
	if cmd.AdmissionVia != nil {
		updates["admission_via"] = *cmd.AdmissionVia
	}
	if cmd.Diagnosis != nil {
		updates["diagnosis"] = *cmd.Diagnosis
	}
	if cmd.ConsumptionLevel != nil {
		updates["consumption_level"] = *cmd.ConsumptionLevel
	}
	if cmd.AdditionalObservation != nil {
		updates["additional_observation"] = *cmd.AdditionalObservation
	}
	if cmd.Status != nil {
		updates["status"] = *cmd.Status
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&consumption.SubstanceConsumption{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating substance consumption: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, consumption.ErrConsumptionNotFound
		}
	}

	// substances_used goes through the model so the json serializer applies
	if cmd.SubstancesUsed != nil {
		err := r.db.WithContext(ctx).
			Model(&consumption.SubstanceConsumption{ID: id}).
			Update("substances_used", *cmd.SubstancesUsed).Error
		if err != nil {
			return nil, fmt.Errorf("updating substances: %w", err)
		}
	}

	return r.GetByID(ctx, id)
}

func (r *ConsumptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*consumption.SubstanceConsumption, error) {
	var list []*consumption.SubstanceConsumption
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND deleted_at IS NULL", patientID).
		Order("admission_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing substance consumptions: %w", err)
	}
	return list, nil
}

func (r *ConsumptionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&consumption.SubstanceConsumption{}).
		Where("deleted_at IS NULL").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting substance consumptions: %w", err)
	}
	return n, nil
}
