package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory InventoryRepository stub ───────────────────────────────────────

type stubInventoryRepo struct {
	items     map[uuid.UUID]*model.InventoryItem
	movements []model.StockMovement
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *stubInventoryRepo) Create(_ context.Context, item *model.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *item
	return &copied, nil
}

func (r *stubInventoryRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.InventoryItem, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubInventoryRepo) FindByBarcode(_ context.Context, barcode string) (*model.InventoryItem, error) {
	for _, item := range r.items {
		if item.Barcode != nil && *item.Barcode == barcode && item.IsActive {
			copied := *item
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubInventoryRepo) List(_ context.Context, filter dto.ItemFilter) ([]model.InventoryItem, int64, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		if filter.Active != "all" && !item.IsActive {
			continue
		}
		if filter.BranchID != "" && item.BranchID.String() != filter.BranchID {
			continue
		}
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func (r *stubInventoryRepo) Update(_ context.Context, item *model.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubInventoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("record not found")
	}
	item.IsActive = false
	return nil
}

func (r *stubInventoryRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("record not found")
	}
	item.IsActive = true
	return nil
}

func (r *stubInventoryRepo) ListLowStock(_ context.Context, branchID uuid.UUID) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		if item.BranchID == branchID && item.IsActive && item.Stock <= item.LowStockAt {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("record not found")
	}
	item.Stock += delta
	return nil
}

func (r *stubInventoryRepo) CreateMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubInventoryRepo) ListMovements(_ context.Context, itemID uuid.UUID, _ int) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── In-memory CategoryRepository stub ────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *stubCategoryRepo) ListByBranch(_ context.Context, branchID uuid.UUID) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if c.BranchID == branchID && c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.categories[id]
	if !ok {
		return errors.New("record not found")
	}
	c.IsActive = false
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func seedItem(repo *stubInventoryRepo, branchID uuid.UUID, name string, price float64, stock int) *model.InventoryItem {
	item := &model.InventoryItem{
		ID:         uuid.New(),
		BranchID:   branchID,
		Name:       name,
		Price:      decimal.NewFromFloat(price),
		Cost:       decimal.NewFromFloat(price / 2),
		Stock:      stock,
		LowStockAt: 5,
		IsActive:   true,
	}
	repo.items[item.ID] = item
	return item
}

func buildInventorySvc() (service.InventoryService, *stubInventoryRepo, *stubCategoryRepo, *stubBranchRepo) {
	inv := newStubInventoryRepo()
	cats := newStubCategoryRepo()
	branches := newStubBranchRepo()
	return service.NewInventoryService(inv, cats, branches, nil), inv, cats, branches
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateItem_WritesInitialStockMovement(t *testing.T) {
	svc, inv, _, branches := buildInventorySvc()
	branch := seedBranch(branches, "Downtown")

	item, err := svc.CreateItem(context.Background(), dto.CreateItemRequest{
		BranchID: branch.ID.String(),
		Name:     "Ensaymada",
		Price:    decimal.NewFromFloat(45),
		Stock:    12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, item.Stock)

	movements, _ := inv.ListMovements(context.Background(), item.ID, 10)
	require.Len(t, movements, 1)
	assert.Equal(t, model.MovementManualAdjust, movements[0].Type)
	assert.Equal(t, 0, movements[0].StockBefore)
	assert.Equal(t, 12, movements[0].StockAfter)
}

func TestCreateItem_DefaultsLowStockThreshold(t *testing.T) {
	svc, _, _, branches := buildInventorySvc()
	branch := seedBranch(branches, "Downtown")

	item, err := svc.CreateItem(context.Background(), dto.CreateItemRequest{
		BranchID: branch.ID.String(),
		Name:     "Pandesal",
		Price:    decimal.NewFromFloat(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, item.LowStockAt)
}

func TestCreateItem_CategoryMustMatchBranch(t *testing.T) {
	svc, _, cats, branches := buildInventorySvc()
	branch := seedBranch(branches, "Downtown")
	other := seedBranch(branches, "Uptown")

	category := &model.Category{ID: uuid.New(), BranchID: other.ID, Name: "Breads", IsActive: true}
	cats.categories[category.ID] = category

	catID := category.ID.String()
	_, err := svc.CreateItem(context.Background(), dto.CreateItemRequest{
		BranchID:   branch.ID.String(),
		CategoryID: &catID,
		Name:       "Pandesal",
		Price:      decimal.NewFromFloat(5),
	})
	assert.ErrorContains(t, err, "another branch")
}

func TestAdjustStock_AppliesDeltaAndMovement(t *testing.T) {
	svc, inv, _, branches := buildInventorySvc()
	branch := seedBranch(branches, "Downtown")
	item := seedItem(inv, branch.ID, "Ube Cake", 350, 10)

	updated, err := svc.AdjustStock(context.Background(), item.ID, dto.AdjustStockRequest{
		Delta:  -4,
		Reason: "spoilage",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)

	movements, _ := inv.ListMovements(context.Background(), item.ID, 10)
	require.Len(t, movements, 1)
	assert.Equal(t, model.MovementManualAdjust, movements[0].Type)
	assert.Equal(t, -4, movements[0].Quantity)
	assert.Equal(t, 10, movements[0].StockBefore)
	assert.Equal(t, 6, movements[0].StockAfter)
	assert.Equal(t, "spoilage", movements[0].Reason)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	svc, inv, _, branches := buildInventorySvc()
	branch := seedBranch(branches, "Downtown")
	item := seedItem(inv, branch.ID, "Ube Cake", 350, 3)

	_, err := svc.AdjustStock(context.Background(), item.ID, dto.AdjustStockRequest{
		Delta:  -5,
		Reason: "typo",
	})
	assert.ErrorIs(t, err, service.ErrStockBelowZero)
	assert.Equal(t, 3, inv.items[item.ID].Stock)
	assert.Empty(t, inv.movements)
}

func TestListLowStock(t *testing.T) {
	svc, inv, _, branches := buildInventorySvc()
	branch := seedBranch(branches, "Downtown")
	low := seedItem(inv, branch.ID, "Pandesal", 5, 3)      // 3 <= 5
	seedItem(inv, branch.ID, "Ensaymada", 45, 40)          // fine
	otherBranch := seedBranch(branches, "Uptown")
	seedItem(inv, otherBranch.ID, "Ube Cake", 350, 1)      // other branch

	items, err := svc.ListLowStock(context.Background(), branch.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)
}

func TestDeactivateThenReactivateItem(t *testing.T) {
	svc, inv, _, branches := buildInventorySvc()
	branch := seedBranch(branches, "Downtown")
	item := seedItem(inv, branch.ID, "Ube Cake", 350, 10)

	require.NoError(t, svc.DeactivateItem(context.Background(), item.ID))
	assert.False(t, inv.items[item.ID].IsActive)

	require.NoError(t, svc.ReactivateItem(context.Background(), item.ID))
	assert.True(t, inv.items[item.ID].IsActive)
}

func TestGetItemByBarcode(t *testing.T) {
	svc, inv, _, branches := buildInventorySvc()
	branch := seedBranch(branches, "Downtown")
	item := seedItem(inv, branch.ID, "Ensaymada", 45, 10)
	barcode := "4800016644931"
	item.Barcode = &barcode

	found, err := svc.GetItemByBarcode(context.Background(), barcode)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
}
