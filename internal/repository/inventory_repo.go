package repository

import (
	"context"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	// FindByIDTx row-locks the item for the duration of tx.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryItem, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.InventoryItem, error)
	List(ctx context.Context, filter dto.ItemFilter) ([]model.InventoryItem, int64, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	ListLowStock(ctx context.Context, branchID uuid.UUID) ([]model.InventoryItem, error)

	// Used inside transactions — callers must pass the tx instance
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error

	ListMovements(ctx context.Context, itemID uuid.UUID, limit int) ([]model.StockMovement, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return &item, err
}

// FindByIDTx reads the item with SELECT ... FOR UPDATE. Concurrent sales of
// the same item block here until the holding transaction commits, so the
// stock each one reads already reflects the other's decrement.
func (r *inventoryRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error
	return &item, err
}

func (r *inventoryRepo) FindByBarcode(ctx context.Context, barcode string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).Where("barcode = ? AND is_active = true", barcode).First(&item).Error
	return &item, err
}

func (r *inventoryRepo) List(ctx context.Context, filter dto.ItemFilter) ([]model.InventoryItem, int64, error) {
	var items []model.InventoryItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.InventoryItem{})

	// Active filter: "false" = inactive, "all" = everything, default = active
	switch filter.Active {
	case "false":
		q = q.Where("is_active = false")
	case "all":
		// no filter
	default:
		q = q.Where("is_active = true")
	}

	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Barcode != "" {
		q = q.Where("barcode = ?", filter.Barcode)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *inventoryRepo) Update(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.InventoryItem{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *inventoryRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.InventoryItem{}).Where("id = ?", id).Update("is_active", true).Error
}

func (r *inventoryRepo) ListLowStock(ctx context.Context, branchID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND is_active = true AND stock <= low_stock_at", branchID).
		Order("stock ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.InventoryItem{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *inventoryRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *inventoryRepo) ListMovements(ctx context.Context, itemID uuid.UUID, limit int) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").Limit(limit).
		Find(&movements).Error
	return movements, err
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
