package tests

import (
	"context"
	"errors"
	"testing"
	"time"

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

// ── In-memory OrderRepository stub ───────────────────────────────────────────

type stubOrderRepo struct {
	orders  map[uuid.UUID]*model.Order
	nextNum int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	copied := *o
	r.orders[o.ID] = &copied
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *o
	return &copied, nil
}

func (r *stubOrderRepo) FindByClientRef(_ context.Context, clientRef string) (*model.Order, error) {
	for _, o := range r.orders {
		if o.ClientRef != nil && *o.ClientRef == clientRef {
			copied := *o
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string, reason *string) error {
	o, ok := r.orders[id]
	if !ok {
		return errors.New("record not found")
	}
	o.Status = status
	if reason != nil {
		o.VoidReason = reason
	}
	return nil
}

func (r *stubOrderRepo) CreatePaymentTx(_ *gorm.DB, p *model.OrderPayment) error {
	o, ok := r.orders[p.OrderID]
	if !ok {
		return errors.New("record not found")
	}
	o.Payments = append(o.Payments, *p)
	return nil
}

func (r *stubOrderRepo) NextOrderNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.nextNum++
	return r.nextNum, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filter.BranchID != "" && o.BranchID.String() != filter.BranchID {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ListRange(_ context.Context, branchID uuid.UUID, from, to string, status string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.BranchID != branchID {
			continue
		}
		day := o.CreatedAt.Format("2006-01-02")
		if day < from || day > to {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func buildOrderSvc() (service.OrderService, *stubOrderRepo, *stubInventoryRepo, *stubDiscountRepo, *stubBranchRepo) {
	orders := newStubOrderRepo()
	inv := newStubInventoryRepo()
	discounts := newStubDiscountRepo()
	branches := newStubBranchRepo()
	svc := service.NewOrderService(orders, inv, discounts, branches, nil, nil, 3)
	return svc, orders, inv, discounts, branches
}

func cashPayment(amount float64) []dto.OrderPaymentInput {
	return []dto.OrderPaymentInput{{Method: "cash", Amount: decimal.NewFromFloat(amount)}}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegisterOrder_TotalsAndChange(t *testing.T) {
	svc, _, inv, _, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	item := seedItem(inv, branch.ID, "Leche Flan", 25.50, 10)

	res, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID: branch.ID.String(),
		Items:    []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 2}},
		Payments: cashPayment(60),
	})
	require.NoError(t, err)
	require.False(t, res.Replayed)

	assert.Equal(t, 1, res.Order.Number)
	assert.Equal(t, "51", res.Order.Subtotal.String())
	assert.Equal(t, "51", res.Order.Total.String())
	assert.Equal(t, "9", res.Change.String())
	assert.Equal(t, model.OrderCompleted, res.Order.Status)
	assert.False(t, res.Order.StockConflict)

	// Stock was decremented and an audit movement written.
	fresh, err := inv.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, fresh.Stock)
	movements, _ := inv.ListMovements(context.Background(), item.ID, 50)
	require.Len(t, movements, 1)
	assert.Equal(t, model.MovementSale, movements[0].Type)
	assert.Equal(t, -2, movements[0].Quantity)
	require.NotNil(t, movements[0].ReferenceID)
	assert.Equal(t, res.Order.ID, *movements[0].ReferenceID)
}

func TestRegisterOrder_OrderScopeDiscount(t *testing.T) {
	svc, _, inv, discounts, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	item := seedItem(inv, branch.ID, "Ube Cake", 100, 10)

	d := &model.Discount{
		ID:       uuid.New(),
		Name:     "Opening promo",
		Type:     model.DiscountPercentage,
		Value:    decimal.NewFromInt(10),
		Scope:    model.ScopeOrder,
		IsActive: true,
	}
	discounts.discounts[d.ID] = d

	discountID := d.ID.String()
	res, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID:   branch.ID.String(),
		Items:      []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 2}},
		Payments:   cashPayment(180),
		DiscountID: &discountID,
	})
	require.NoError(t, err)

	assert.Equal(t, "200", res.Order.Subtotal.String())
	assert.Equal(t, "20", res.Order.DiscountTotal.String())
	assert.Equal(t, "180", res.Order.Total.String())
	assert.True(t, res.Change.IsZero())
}

func TestRegisterOrder_ItemScopeDiscountPerLine(t *testing.T) {
	svc, _, inv, discounts, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	discounted := seedItem(inv, branch.ID, "Day-old Pandesal", 50, 10)
	regular := seedItem(inv, branch.ID, "Ensaymada", 40, 10)

	d := &model.Discount{
		ID:       uuid.New(),
		Name:     "Line off",
		Type:     model.DiscountFixed,
		Value:    decimal.NewFromInt(15),
		Scope:    model.ScopeItem,
		IsActive: true,
	}
	discounts.discounts[d.ID] = d

	discountID := d.ID.String()
	res, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID: branch.ID.String(),
		Items: []dto.OrderItemInput{
			{ItemID: discounted.ID.String(), Quantity: 1},
			{ItemID: regular.ID.String(), Quantity: 1},
		},
		Payments:   cashPayment(100),
		DiscountID: &discountID,
	})
	require.NoError(t, err)

	// Item-scope: 15 off each of the two lines, never on the order subtotal.
	assert.Equal(t, "90", res.Order.Subtotal.String())
	assert.Equal(t, "30", res.Order.DiscountTotal.String())
	assert.Equal(t, "60", res.Order.Total.String())
	assert.Equal(t, "40", res.Change.String())
}

func TestRegisterOrder_InsufficientPayment(t *testing.T) {
	svc, _, inv, _, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	item := seedItem(inv, branch.ID, "Bibingka", 80, 10)

	_, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID: branch.ID.String(),
		Items:    []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 1}},
		Payments: cashPayment(50),
	})
	require.ErrorIs(t, err, service.ErrInsufficientPayment)

	// Rejected before any stock was touched.
	fresh, _ := inv.FindByID(context.Background(), item.ID)
	assert.Equal(t, 10, fresh.Stock)
	assert.Empty(t, inv.movements)
}

func TestRegisterOrder_StockConflictWithinLimit(t *testing.T) {
	svc, _, inv, _, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	item := seedItem(inv, branch.ID, "Puto", 10, 2)

	// Deficit of 2 is inside the accepted limit of 3: the sale goes through
	// flagged, stock goes negative for later compensation.
	res, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID: branch.ID.String(),
		Items:    []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 4}},
		Payments: cashPayment(40),
	})
	require.NoError(t, err)
	assert.True(t, res.Order.StockConflict)

	fresh, _ := inv.FindByID(context.Background(), item.ID)
	assert.Equal(t, -2, fresh.Stock)
}

func TestRegisterOrder_StockConflictBeyondLimit(t *testing.T) {
	svc, orders, inv, _, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	item := seedItem(inv, branch.ID, "Puto", 10, 1)

	_, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID: branch.ID.String(),
		Items:    []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 5}},
		Payments: cashPayment(50),
	})
	require.ErrorIs(t, err, service.ErrStockConflict)

	fresh, _ := inv.FindByID(context.Background(), item.ID)
	assert.Equal(t, 1, fresh.Stock)
	assert.Empty(t, orders.orders)
}

func TestRegisterOrder_ClientRefReplay(t *testing.T) {
	svc, _, inv, _, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	item := seedItem(inv, branch.ID, "Halo-halo", 120, 10)

	ref := "pos-7f3a-0001"
	req := dto.RegisterOrderRequest{
		BranchID:  branch.ID.String(),
		Items:     []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 1}},
		Payments:  cashPayment(120),
		ClientRef: &ref,
	}

	first, err := svc.Register(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.False(t, first.Replayed)

	second, err := svc.Register(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)

	// The replay never touches stock again.
	fresh, _ := inv.FindByID(context.Background(), item.ID)
	assert.Equal(t, 9, fresh.Stock)
}

func TestRegisterOrder_ItemFromAnotherBranch(t *testing.T) {
	svc, _, inv, _, branches := buildOrderSvc()
	main := seedBranch(branches, "Main")
	annex := seedBranch(branches, "Annex")
	item := seedItem(inv, annex.ID, "Taho", 15, 10)

	_, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID: main.ID.String(),
		Items:    []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 1}},
		Payments: cashPayment(15),
	})
	assert.ErrorContains(t, err, "another branch")
}

func TestVoidOrder_RestoresStock(t *testing.T) {
	svc, _, inv, _, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	item := seedItem(inv, branch.ID, "Siopao", 35, 10)

	res, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID: branch.ID.String(),
		Items:    []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 3}},
		Payments: cashPayment(105),
	})
	require.NoError(t, err)

	voided, err := svc.Void(context.Background(), res.Order.ID, dto.VoidOrderRequest{Reason: "wrong order keyed in"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderVoided, voided.Status)
	require.NotNil(t, voided.VoidReason)
	assert.Equal(t, "wrong order keyed in", *voided.VoidReason)

	fresh, _ := inv.FindByID(context.Background(), item.ID)
	assert.Equal(t, 10, fresh.Stock)

	movements, _ := inv.ListMovements(context.Background(), item.ID, 50)
	require.Len(t, movements, 2)
	assert.Equal(t, model.MovementVoidRestore, movements[1].Type)
	assert.Equal(t, 3, movements[1].Quantity)

	// The void records inverse tender lines alongside the originals.
	require.Len(t, voided.Payments, 2)
	assert.Equal(t, "105", voided.Payments[0].Amount.String())
	assert.Equal(t, "-105", voided.Payments[1].Amount.String())
}

func TestVoidOrder_OnlyCompletedOrders(t *testing.T) {
	svc, _, inv, _, branches := buildOrderSvc()
	branch := seedBranch(branches, "Main")
	item := seedItem(inv, branch.ID, "Siopao", 35, 10)

	res, err := svc.Register(context.Background(), uuid.New(), dto.RegisterOrderRequest{
		BranchID: branch.ID.String(),
		Items:    []dto.OrderItemInput{{ItemID: item.ID.String(), Quantity: 1}},
		Payments: cashPayment(35),
	})
	require.NoError(t, err)

	_, err = svc.Void(context.Background(), res.Order.ID, dto.VoidOrderRequest{Reason: "customer left"})
	require.NoError(t, err)

	_, err = svc.Void(context.Background(), res.Order.ID, dto.VoidOrderRequest{Reason: "again"})
	assert.ErrorIs(t, err, service.ErrOrderNotVoidable)
}
