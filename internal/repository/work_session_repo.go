package repository

import (
	"context"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkSessionRepository interface {
	Create(ctx context.Context, s *model.WorkSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WorkSession, error)
	FindOpenByWorker(ctx context.Context, workerID uuid.UUID) (*model.WorkSession, error)
	Update(ctx context.Context, s *model.WorkSession) error
	List(ctx context.Context, filter dto.SessionFilter) ([]model.WorkSession, int64, error)
	// ListOpenedBefore feeds the shift watchdog: open sessions whose
	// opened_at is before the cutoff.
	ListOpenedBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.WorkSession, error)
	// SumMinutes totals closed-session minutes for a worker in a date range.
	SumMinutes(ctx context.Context, workerID uuid.UUID, from, to string) (int, int, error)
}

type workSessionRepo struct{ db *gorm.DB }

func NewWorkSessionRepository(db *gorm.DB) WorkSessionRepository { return &workSessionRepo{db: db} }

func (r *workSessionRepo) Create(ctx context.Context, s *model.WorkSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *workSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.WorkSession, error) {
	var s model.WorkSession
	err := r.db.WithContext(ctx).Preload("Worker").Preload("Branch").First(&s, id).Error
	return &s, err
}

func (r *workSessionRepo) FindOpenByWorker(ctx context.Context, workerID uuid.UUID) (*model.WorkSession, error) {
	var s model.WorkSession
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND status = 'open'", workerID).First(&s).Error
	return &s, err
}

func (r *workSessionRepo) Update(ctx context.Context, s *model.WorkSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *workSessionRepo) List(ctx context.Context, filter dto.SessionFilter) ([]model.WorkSession, int64, error) {
	var sessions []model.WorkSession
	var total int64

	q := r.db.WithContext(ctx).Model(&model.WorkSession{})

	if filter.WorkerID != "" {
		q = q.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.From != "" {
		q = q.Where("DATE(opened_at) >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("DATE(opened_at) <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Worker").Preload("Branch").
		Order("opened_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *workSessionRepo) ListOpenedBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.WorkSession, error) {
	var sessions []model.WorkSession
	err := r.db.WithContext(ctx).
		Where("status = 'open' AND opened_at < ?", cutoff).
		Order("opened_at ASC").Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (r *workSessionRepo) SumMinutes(ctx context.Context, workerID uuid.UUID, from, to string) (int, int, error) {
	type row struct {
		Sessions int
		Minutes  int
	}
	var res row
	err := r.db.WithContext(ctx).Model(&model.WorkSession{}).
		Select("COUNT(*) AS sessions, COALESCE(SUM(duration_minutes), 0) AS minutes").
		Where("worker_id = ? AND status = 'closed'", workerID).
		Where("DATE(opened_at) >= ? AND DATE(opened_at) <= ?", from, to).
		Scan(&res).Error
	return res.Sessions, res.Minutes, err
}
