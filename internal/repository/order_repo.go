package repository

import (
	"context"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByClientRef(ctx context.Context, clientRef string) (*model.Order, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string, reason *string) error
	// CreatePaymentTx appends a tender line to an existing order — voids use
	// it to record the inverse of each original payment.
	CreatePaymentTx(tx *gorm.DB, p *model.OrderPayment) error
	NextOrderNumber(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	// ListRange returns all orders of a branch between two instants — the
	// analytics queries aggregate in the service layer.
	ListRange(ctx context.Context, branchID uuid.UUID, from, to string, status string) ([]model.Order, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items.Item").Preload("Payments").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) FindByClientRef(ctx context.Context, clientRef string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items.Item").Preload("Payments").
		Where("client_ref = ?", clientRef).First(&o).Error
	return &o, err
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string, reason *string) error {
	updates := map[string]interface{}{"status": status}
	if reason != nil {
		updates["void_reason"] = *reason
	}
	return tx.Model(&model.Order{}).Where("id = ?", id).Updates(updates).Error
}

func (r *orderRepo) CreatePaymentTx(tx *gorm.DB, p *model.OrderPayment) error {
	return tx.Create(p).Error
}

func (r *orderRepo) NextOrderNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic order number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('orders_number_seq')").Scan(&num).Error
	return num, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Item").Preload("Payments").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepo) ListRange(ctx context.Context, branchID uuid.UUID, from, to string, status string) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Where("DATE(created_at) >= ? AND DATE(created_at) <= ?", from, to)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Preload("Items.Item").Preload("Payments").
		Order("created_at ASC").Find(&orders).Error
	return orders, err
}
