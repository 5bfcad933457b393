package repository

import (
	"context"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkerRepository defines the data access contract for staff accounts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type WorkerRepository interface {
	Create(ctx context.Context, w *model.Worker) error
	FindByUsername(ctx context.Context, username string) (*model.Worker, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Worker, error)
	List(ctx context.Context) ([]model.Worker, error)
	ListAll(ctx context.Context) ([]model.Worker, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.Worker, error)
	Update(ctx context.Context, w *model.Worker) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// Assignments — Tx variants are used by the transactional replace.
	CreateAssignmentTx(tx *gorm.DB, a *model.RoleAssignment) error
	DeleteAssignmentsTx(tx *gorm.DB, workerID uuid.UUID) error
	ListAssignments(ctx context.Context, workerID uuid.UUID) ([]model.RoleAssignment, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type workerRepo struct{ db *gorm.DB }

func NewWorkerRepository(db *gorm.DB) WorkerRepository { return &workerRepo{db: db} }

func (r *workerRepo) Create(ctx context.Context, w *model.Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *workerRepo) FindByUsername(ctx context.Context, username string) (*model.Worker, error) {
	var w model.Worker
	// Accept login by username OR email (case-insensitive email match)
	err := r.db.WithContext(ctx).
		Preload("Assignments.Branch").
		Where("(username = ? OR LOWER(email::text) = LOWER(?)) AND is_active = true", username, username).
		First(&w).Error
	return &w, err
}

func (r *workerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Worker, error) {
	var w model.Worker
	err := r.db.WithContext(ctx).Preload("Assignments.Branch").First(&w, id).Error
	return &w, err
}

func (r *workerRepo) List(ctx context.Context) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).Preload("Assignments.Branch").
		Where("is_active = true").Order("name ASC").Find(&workers).Error
	return workers, err
}

func (r *workerRepo) ListAll(ctx context.Context) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).Preload("Assignments.Branch").Order("name ASC").Find(&workers).Error
	return workers, err
}

func (r *workerRepo) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).Preload("Assignments.Branch").
		Joins("JOIN role_assignments ra ON ra.worker_id = workers.id").
		Where("ra.branch_id = ? AND ra.is_active = true AND workers.is_active = true", branchID).
		Order("workers.name ASC").
		Find(&workers).Error
	return workers, err
}

func (r *workerRepo) Update(ctx context.Context, w *model.Worker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *workerRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Worker{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *workerRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Worker{}).Where("id = ?", id).Update("is_active", true).Error
}

func (r *workerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Worker{}).Where("id = ?", id).Update("current_status", status).Error
}

func (r *workerRepo) CreateAssignmentTx(tx *gorm.DB, a *model.RoleAssignment) error {
	return tx.Create(a).Error
}

func (r *workerRepo) DeleteAssignmentsTx(tx *gorm.DB, workerID uuid.UUID) error {
	return tx.Where("worker_id = ?", workerID).Delete(&model.RoleAssignment{}).Error
}

func (r *workerRepo) ListAssignments(ctx context.Context, workerID uuid.UUID) ([]model.RoleAssignment, error) {
	var assignments []model.RoleAssignment
	err := r.db.WithContext(ctx).Preload("Branch").
		Where("worker_id = ?", workerID).Find(&assignments).Error
	return assignments, err
}

func (r *workerRepo) DB() *gorm.DB { return r.db }
