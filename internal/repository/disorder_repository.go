package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saludmental/mindtrack/internal/domain/disorder"
)

type DisorderRepository struct {
	db *gorm.DB
}

func NewDisorderRepository(db *gorm.DB) *DisorderRepository {
	return &DisorderRepository{db: db}
}

func (r *DisorderRepository) Create(ctx context.Context, d *disorder.MentalDisorder) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("inserting mental disorder: %w", err)
	}
	return nil
}

func (r *DisorderRepository) GetByID(ctx context.Context, id uuid.UUID) (*disorder.MentalDisorder, error) {
	var d disorder.MentalDisorder
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, disorder.ErrDisorderNotFound
		}
		return nil, fmt.Errorf("querying mental disorder: %w", err)
	}
	return &d, nil
}

func (r *DisorderRepository) GetByPatientID(ctx context.Context, patientID uuid.UUID) (*disorder.MentalDisorder, error) {
	var d disorder.MentalDisorder
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND deleted_at IS NULL", patientID).
		Order("created_at ASC").
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, disorder.ErrDisorderNotFound
		}
		return nil, fmt.Errorf("querying mental disorder by patient: %w", err)
	}
	return &d, nil
}

func (r *DisorderRepository) Update(ctx context.Context, id uuid.UUID, cmd *disorder.UpdateCommand) (*disorder.MentalDisorder, error) {
	updates := map[string]any{}
	if cmd.AdmissionDate != nil {
		updates["admission_date"] = *cmd.AdmissionDate
	}
	if cmd.AdmissionType != nil {
		updates["admission_type"] = *cmd.AdmissionType
	}
	if cmd.AdmissionVia != nil {
		updates["admission_via"] = *cmd.AdmissionVia
	}
	if cmd.ServiceArea != nil {
		updates["service_area"] = *cmd.ServiceArea
	}
	if cmd.DiagnosisCode != nil {
		updates["diagnosis_code"] = *cmd.DiagnosisCode
	}
	if cmd.DiagnosisDate != nil {
		updates["diagnosis_date"] = *cmd.DiagnosisDate
	}
	if cmd.DiagnosisDescription != nil {
		updates["diagnosis_description"] = *cmd.DiagnosisDescription
	}
	if cmd.DiagnosisType != nil {
		updates["diagnosis_type"] = *cmd.DiagnosisType
	}
	if cmd.AdditionalObservation != nil {
		updates["additional_observation"] = *cmd.AdditionalObservation
	}
	if cmd.Status != nil {
		updates["status"] = *cmd.Status
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&disorder.MentalDisorder{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating mental disorder: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, disorder.ErrDisorderNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *DisorderRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*disorder.MentalDisorder, error) {
	var list []*disorder.MentalDisorder
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND deleted_at IS NULL", patientID).
		Order("admission_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing mental disorders: %w", err)
	}
	return list, nil
}

func (r *DisorderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&disorder.MentalDisorder{}).
		Where("deleted_at IS NULL").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting mental disorders: %w", err)
	}
	return n, nil
}
