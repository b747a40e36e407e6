package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saludmental/mindtrack/internal/domain/followup"
)

type FollowupRepository struct {
	db *gorm.DB
}

func NewFollowupRepository(db *gorm.DB) *FollowupRepository {
	return &FollowupRepository{db: db}
}

func (r *FollowupRepository) Create(ctx context.Context, f *followup.MonthlyFollowup) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("inserting followup: %w", err)
	}
	return nil
}

func (r *FollowupRepository) GetByID(ctx context.Context, id uuid.UUID) (*followup.MonthlyFollowup, error) {
	var f followup.MonthlyFollowup
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, followup.ErrFollowupNotFound
		}
		return nil, fmt.Errorf("querying followup: %w", err)
	}
	return &f, nil
}

func (r *FollowupRepository) ExistsForPeriod(ctx context.Context, ref followup.CaseRef, year, month int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&followup.MonthlyFollowup{}).
		Where("case_type = ? AND case_id = ? AND year = ? AND month = ? AND deleted_at IS NULL",
			ref.Type, ref.ID, year, month).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("checking followup period: %w", err)
	}
	return n > 0, nil
}

func (r *FollowupRepository) ListByCase(ctx context.Context, ref followup.CaseRef) ([]*followup.MonthlyFollowup, error) {
	var list []*followup.MonthlyFollowup
	err := r.db.WithContext(ctx).
		Where("case_type = ? AND case_id = ? AND deleted_at IS NULL", ref.Type, ref.ID).
		Order("year ASC, month ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing followups: %w", err)
	}
	return list, nil
}

func (r *FollowupRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&followup.MonthlyFollowup{}).
		Where("deleted_at IS NULL").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting followups: %w", err)
	}
	return n, nil
}

func (r *FollowupRepository) CountByStatus(ctx context.Context) (map[followup.Status]int64, error) {
	var rows []struct {
		Status followup.Status
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&followup.MonthlyFollowup{}).
		Select("status, COUNT(*) AS n").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting followups by status: %w", err)
	}

	out := make(map[followup.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
