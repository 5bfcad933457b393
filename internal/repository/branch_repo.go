package repository

import (
	"context"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(ctx context.Context, b *model.Branch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	List(ctx context.Context, active string) ([]model.Branch, error)
	Update(ctx context.Context, b *model.Branch) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type branchRepo struct{ db *gorm.DB }

func NewBranchRepository(db *gorm.DB) BranchRepository { return &branchRepo{db: db} }

func (r *branchRepo) Create(ctx context.Context, b *model.Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *branchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	var b model.Branch
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *branchRepo) List(ctx context.Context, active string) ([]model.Branch, error) {
	var branches []model.Branch
	q := r.db.WithContext(ctx).Model(&model.Branch{})

	// Active filter: "false" = inactive, "all" = everything, default = active
	switch active {
	case "false":
		q = q.Where("is_active = false")
	case "all":
		// no filter
	default:
		q = q.Where("is_active = true")
	}

	err := q.Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *branchRepo) Update(ctx context.Context, b *model.Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *branchRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Branch{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *branchRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Branch{}).Where("id = ?", id).Update("is_active", true).Error
}
