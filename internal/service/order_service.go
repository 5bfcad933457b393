package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInsufficientPayment = errors.New("payments do not cover the order total")
	ErrStockConflict       = errors.New("stock deficit exceeds the accepted conflict limit")
	ErrOrderNotVoidable    = errors.New("only completed orders can be voided")
)

// OrderResult pairs the persisted order with the change owed to the customer.
type OrderResult struct {
	Order  *model.Order
	Change decimal.Decimal
	// Replayed is true when a client_ref matched an existing order.
	Replayed bool
}

type OrderService interface {
	Register(ctx context.Context, workerID uuid.UUID, req dto.RegisterOrderRequest) (*OrderResult, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Void(ctx context.Context, id uuid.UUID, req dto.VoidOrderRequest) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
}

type orderService struct {
	orders        repository.OrderRepository
	inventory     repository.InventoryRepository
	discounts     repository.DiscountRepository
	branches      repository.BranchRepository
	dispatcher    *worker.Dispatcher
	rt            realtime.Publisher
	conflictLimit int
}

func NewOrderService(
	orders repository.OrderRepository,
	inventory repository.InventoryRepository,
	discounts repository.DiscountRepository,
	branches repository.BranchRepository,
	dispatcher *worker.Dispatcher,
	rt realtime.Publisher,
	conflictLimit int,
) OrderService {
	return &orderService{
		orders:        orders,
		inventory:     inventory,
		discounts:     discounts,
		branches:      branches,
		dispatcher:    dispatcher,
		rt:            rt,
		conflictLimit: conflictLimit,
	}
}

// Register creates a sale. Prices are always resolved server-side from the
// current catalog; the storefront only sends item ids and quantities.
func (s *orderService) Register(ctx context.Context, workerID uuid.UUID, req dto.RegisterOrderRequest) (*OrderResult, error) {
	// Offline storefronts replay queued orders after reconnecting; the
	// client_ref makes the replay return the original order instead of
	// charging twice.
	if req.ClientRef != nil && *req.ClientRef != "" {
		if existing, err := s.orders.FindByClientRef(ctx, *req.ClientRef); err == nil && existing != nil && existing.ID != uuid.Nil {
			return &OrderResult{Order: existing, Change: decimal.Zero, Replayed: true}, nil
		}
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch id")
	}
	if branch, err := s.branches.FindByID(ctx, branchID); err != nil || !branch.IsActive {
		return nil, errors.New("branch not found or inactive")
	}

	now := time.Now().UTC()

	var discount *model.Discount
	if req.DiscountID != nil && *req.DiscountID != "" {
		discountID, err := uuid.Parse(*req.DiscountID)
		if err != nil {
			return nil, errors.New("invalid discount id")
		}
		discount, err = s.discounts.FindByID(ctx, discountID)
		if err != nil {
			return nil, errors.New("discount not found")
		}
		if !Applicable(discount, branchID, now) {
			return nil, errors.New("discount not applicable to this branch at this time")
		}
	}

	lines, subtotal, err := s.buildLines(ctx, branchID, req.Items, discount)
	if err != nil {
		return nil, err
	}

	discountTotal := decimal.Zero
	for _, line := range lines {
		discountTotal = discountTotal.Add(line.LineDiscount)
	}
	if discount != nil && discount.Scope == model.ScopeOrder {
		discountTotal = discountTotal.Add(ApplyDiscount(discount, subtotal))
	}
	total := subtotal.Sub(discountTotal)

	paid := decimal.Zero
	payments := make([]model.OrderPayment, 0, len(req.Payments))
	for _, p := range req.Payments {
		paid = paid.Add(p.Amount)
		payments = append(payments, model.OrderPayment{Method: p.Method, Amount: p.Amount})
	}
	if paid.LessThan(total) {
		return nil, ErrInsufficientPayment
	}
	change := paid.Sub(total)

	order := &model.Order{
		// ID assigned here so stock movements can reference it before the
		// insert happens.
		ID:            uuid.New(),
		BranchID:      branchID,
		WorkerID:      workerID,
		ClientRef:     req.ClientRef,
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		Total:         total,
		Status:        model.OrderCompleted,
		CustomerEmail: req.CustomerEmail,
		Items:         lines,
		Payments:      payments,
	}
	if discount != nil {
		order.DiscountID = &discount.ID
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		number, err := s.orders.NextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}
		order.Number = number

		// The row-locking read makes two terminals selling the last unit
		// serialize: the second sees the first's decrement, so the deficit
		// guard and the movement ledger work from committed stock.
		for i := range order.Items {
			line := &order.Items[i]
			before := line.Item.Stock
			if tx != nil {
				fresh, err := s.inventory.FindByIDTx(tx, line.ItemID)
				if err != nil {
					return err
				}
				before = fresh.Stock
			}
			if deficit := line.Quantity - before; deficit > 0 {
				if deficit > s.conflictLimit {
					return fmt.Errorf("%w: item %s short by %d", ErrStockConflict, line.ItemID, deficit)
				}
				order.StockConflict = true
			}
			if err := s.inventory.UpdateStockTx(tx, line.ItemID, -line.Quantity); err != nil {
				return err
			}
			if err := s.inventory.CreateMovementTx(tx, &model.StockMovement{
				ItemID:      line.ItemID,
				Type:        model.MovementSale,
				Quantity:    -line.Quantity,
				StockBefore: before,
				StockAfter:  before - line.Quantity,
				ReferenceID: &order.ID,
			}); err != nil {
				return err
			}
		}

		// Preloaded items were only needed for pricing; creating with them
		// attached would upsert catalog rows.
		for i := range order.Items {
			order.Items[i].Item = nil
		}
		return s.orders.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.afterRegister(ctx, order)
	return &OrderResult{Order: order, Change: change}, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// Void reverses a completed sale: stock comes back with void_restore
// movements and each tender gets an inverse line, all in one transaction.
func (s *orderService) Void(ctx context.Context, id uuid.UUID, req dto.VoidOrderRequest) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.Status != model.OrderCompleted {
		return nil, ErrOrderNotVoidable
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.orders.UpdateStatusTx(tx, id, model.OrderVoided, &req.Reason); err != nil {
			return err
		}
		for _, line := range order.Items {
			before := 0
			if line.Item != nil {
				before = line.Item.Stock
			}
			if tx != nil {
				fresh, err := s.inventory.FindByIDTx(tx, line.ItemID)
				if err != nil {
					return err
				}
				before = fresh.Stock
			}
			if err := s.inventory.UpdateStockTx(tx, line.ItemID, line.Quantity); err != nil {
				return err
			}
			if err := s.inventory.CreateMovementTx(tx, &model.StockMovement{
				ItemID:      line.ItemID,
				Type:        model.MovementVoidRestore,
				Quantity:    line.Quantity,
				StockBefore: before,
				StockAfter:  before + line.Quantity,
				Reason:      req.Reason,
				ReferenceID: &order.ID,
			}); err != nil {
				return err
			}
		}
		// Inverse tender lines record the money handed back.
		for _, p := range order.Payments {
			if err := s.orders.CreatePaymentTx(tx, &model.OrderPayment{
				OrderID: order.ID,
				Method:  p.Method,
				Amount:  p.Amount.Neg(),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err = s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, order, "updated")
	return order, nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.orders.List(ctx, filter)
}

// buildLines resolves prices against the branch catalog and applies
// item-scope discounts per line.
func (s *orderService) buildLines(ctx context.Context, branchID uuid.UUID, inputs []dto.OrderItemInput, discount *model.Discount) ([]model.OrderItem, decimal.Decimal, error) {
	lines := make([]model.OrderItem, 0, len(inputs))
	subtotal := decimal.Zero

	for _, in := range inputs {
		itemID, err := uuid.Parse(in.ItemID)
		if err != nil {
			return nil, decimal.Zero, errors.New("invalid item id")
		}
		item, err := s.inventory.FindByID(ctx, itemID)
		if err != nil || !item.IsActive {
			return nil, decimal.Zero, fmt.Errorf("item %s not found or inactive", in.ItemID)
		}
		if item.BranchID != branchID {
			return nil, decimal.Zero, fmt.Errorf("item %s belongs to another branch", in.ItemID)
		}

		qty := decimal.NewFromInt(int64(in.Quantity))
		lineSubtotal := item.Price.Mul(qty)

		lineDiscount := decimal.Zero
		if discount != nil && discount.Scope == model.ScopeItem {
			lineDiscount = ApplyDiscount(discount, lineSubtotal)
		}

		lines = append(lines, model.OrderItem{
			ItemID:       itemID,
			Quantity:     in.Quantity,
			UnitPrice:    item.Price,
			LineDiscount: lineDiscount,
			Subtotal:     lineSubtotal,
			Item:         item,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}
	return lines, subtotal, nil
}

func (s *orderService) afterRegister(ctx context.Context, order *model.Order) {
	s.publish(ctx, order, "created")

	if s.dispatcher == nil {
		return
	}
	payload := worker.ReceiptJobPayload{OrderID: order.ID.String()}
	if order.CustomerEmail != nil {
		payload.CustomerEmail = *order.CustomerEmail
	}
	if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
		// The sale is already committed; receipt delivery is best-effort.
		log.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to enqueue receipt job")
	}
}

func (s *orderService) publish(ctx context.Context, order *model.Order, action string) {
	if s.rt == nil {
		return
	}
	s.rt.Publish(ctx, realtime.Event{
		Collection: "orders",
		BranchID:   order.BranchID.String(),
		EntityID:   order.ID.String(),
		Action:     action,
	})
}
