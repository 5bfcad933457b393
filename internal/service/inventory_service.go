package service

import (
	"context"
	"errors"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrStockBelowZero = errors.New("adjustment would leave negative stock")

type InventoryService interface {
	// Categories
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context, branchID uuid.UUID) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Items
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*model.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	GetItemByBarcode(ctx context.Context, barcode string) (*model.InventoryItem, error)
	ListItems(ctx context.Context, filter dto.ItemFilter) ([]model.InventoryItem, int64, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*model.InventoryItem, error)
	DeactivateItem(ctx context.Context, id uuid.UUID) error
	ReactivateItem(ctx context.Context, id uuid.UUID) error

	// Stock
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*model.InventoryItem, error)
	ListLowStock(ctx context.Context, branchID uuid.UUID) ([]model.InventoryItem, error)
	ListMovements(ctx context.Context, itemID uuid.UUID, limit int) ([]model.StockMovement, error)
}

type inventoryService struct {
	repo       repository.InventoryRepository
	categories repository.CategoryRepository
	branches   repository.BranchRepository
	rt         realtime.Publisher
}

func NewInventoryService(
	repo repository.InventoryRepository,
	categories repository.CategoryRepository,
	branches repository.BranchRepository,
	rt realtime.Publisher,
) InventoryService {
	return &inventoryService{repo: repo, categories: categories, branches: branches, rt: rt}
}

// ─── Categories ──────────────────────────────────────────────────────────────

func (s *inventoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.Category, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch id")
	}
	if branch, err := s.branches.FindByID(ctx, branchID); err != nil || !branch.IsActive {
		return nil, errors.New("branch not found or inactive")
	}

	category := &model.Category{
		BranchID:    branchID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.publish(ctx, "categories", branchID, category.ID, "created")
	return category, nil
}

func (s *inventoryService) ListCategories(ctx context.Context, branchID uuid.UUID) ([]model.Category, error) {
	return s.categories.ListByBranch(ctx, branchID)
}

func (s *inventoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("category not found")
	}
	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	s.publish(ctx, "categories", category.BranchID, category.ID, "updated")
	return category, nil
}

func (s *inventoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return errors.New("category not found")
	}
	if err := s.categories.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "categories", category.BranchID, id, "deleted")
	return nil
}

// ─── Items ───────────────────────────────────────────────────────────────────

func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*model.InventoryItem, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch id")
	}
	if branch, err := s.branches.FindByID(ctx, branchID); err != nil || !branch.IsActive {
		return nil, errors.New("branch not found or inactive")
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID, branchID)
	if err != nil {
		return nil, err
	}

	item := &model.InventoryItem{
		BranchID:    branchID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Barcode:     req.Barcode,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		LowStockAt:  req.LowStockAt,
		ImgURL:      req.ImgURL,
		IsActive:    true,
	}
	if item.LowStockAt == 0 {
		item.LowStockAt = 5
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx != nil {
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		} else {
			if err := s.repo.Create(ctx, item); err != nil {
				return err
			}
		}
		if item.Stock > 0 {
			return s.repo.CreateMovementTx(tx, &model.StockMovement{
				ItemID:      item.ID,
				Type:        model.MovementManualAdjust,
				Quantity:    item.Stock,
				StockBefore: 0,
				StockAfter:  item.Stock,
				Reason:      "initial stock",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "inventory_items", branchID, item.ID, "created")
	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *inventoryService) GetItemByBarcode(ctx context.Context, barcode string) (*model.InventoryItem, error) {
	return s.repo.FindByBarcode(ctx, barcode)
}

func (s *inventoryService) ListItems(ctx context.Context, filter dto.ItemFilter) ([]model.InventoryItem, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

func (s *inventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*model.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("item not found")
	}

	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID, item.BranchID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = categoryID
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Barcode != nil {
		item.Barcode = req.Barcode
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.LowStockAt != nil {
		item.LowStockAt = *req.LowStockAt
	}
	if req.ImgURL != nil {
		item.ImgURL = req.ImgURL
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, "inventory_items", item.BranchID, item.ID, "updated")
	return item, nil
}

func (s *inventoryService) DeactivateItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("item not found")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "inventory_items", item.BranchID, id, "deleted")
	return nil
}

func (s *inventoryService) ReactivateItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("item not found")
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "inventory_items", item.BranchID, id, "updated")
	return nil
}

// ─── Stock ───────────────────────────────────────────────────────────────────

// AdjustStock applies a manual correction and writes the audit movement in
// the same transaction.
func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*model.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("item not found")
	}
	if item.Stock+req.Delta < 0 {
		return nil, ErrStockBelowZero
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		before := item.Stock
		if tx != nil {
			// Re-read under the transaction so concurrent sales don't skew
			// the before/after audit values.
			fresh, err := s.repo.FindByIDTx(tx, id)
			if err != nil {
				return err
			}
			before = fresh.Stock
		}
		if before+req.Delta < 0 {
			return ErrStockBelowZero
		}
		if err := s.repo.UpdateStockTx(tx, id, req.Delta); err != nil {
			return err
		}
		return s.repo.CreateMovementTx(tx, &model.StockMovement{
			ItemID:      id,
			Type:        model.MovementManualAdjust,
			Quantity:    req.Delta,
			StockBefore: before,
			StockAfter:  before + req.Delta,
			Reason:      req.Reason,
		})
	})
	if err != nil {
		return nil, err
	}

	item, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "inventory_items", item.BranchID, item.ID, "updated")
	return item, nil
}

func (s *inventoryService) ListLowStock(ctx context.Context, branchID uuid.UUID) ([]model.InventoryItem, error) {
	return s.repo.ListLowStock(ctx, branchID)
}

func (s *inventoryService) ListMovements(ctx context.Context, itemID uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.repo.ListMovements(ctx, itemID, limit)
}

func (s *inventoryService) resolveCategory(ctx context.Context, raw *string, branchID uuid.UUID) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	categoryID, err := uuid.Parse(*raw)
	if err != nil {
		return nil, errors.New("invalid category id")
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil || !category.IsActive {
		return nil, errors.New("category not found or inactive")
	}
	if category.BranchID != branchID {
		return nil, errors.New("category belongs to another branch")
	}
	return &categoryID, nil
}

func (s *inventoryService) publish(ctx context.Context, collection string, branchID, entityID uuid.UUID, action string) {
	if s.rt == nil {
		return
	}
	s.rt.Publish(ctx, realtime.Event{
		Collection: collection,
		BranchID:   branchID.String(),
		EntityID:   entityID.String(),
		Action:     action,
	})
}
