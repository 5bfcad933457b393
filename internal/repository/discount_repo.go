package repository

import (
	"context"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(ctx context.Context, d *model.Discount) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	List(ctx context.Context, active string) ([]model.Discount, error)
	// ListApplicable returns active discounts valid at ts for the branch
	// (branch-scoped plus global ones).
	ListApplicable(ctx context.Context, branchID uuid.UUID, ts time.Time) ([]model.Discount, error)
	Update(ctx context.Context, d *model.Discount) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type discountRepo struct{ db *gorm.DB }

func NewDiscountRepository(db *gorm.DB) DiscountRepository { return &discountRepo{db: db} }

func (r *discountRepo) Create(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *discountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *discountRepo) List(ctx context.Context, active string) ([]model.Discount, error) {
	var discounts []model.Discount
	q := r.db.WithContext(ctx).Model(&model.Discount{})

	switch active {
	case "false":
		q = q.Where("is_active = false")
	case "all":
		// no filter
	default:
		q = q.Where("is_active = true")
	}

	err := q.Order("name ASC").Find(&discounts).Error
	return discounts, err
}

func (r *discountRepo) ListApplicable(ctx context.Context, branchID uuid.UUID, ts time.Time) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Where("branch_id IS NULL OR branch_id = ?", branchID).
		Where("starts_at IS NULL OR starts_at <= ?", ts).
		Where("ends_at IS NULL OR ends_at >= ?", ts).
		Order("name ASC").Find(&discounts).Error
	return discounts, err
}

func (r *discountRepo) Update(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *discountRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Discount{}).Where("id = ?", id).Update("is_active", false).Error
}
