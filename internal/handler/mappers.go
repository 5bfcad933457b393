package handler

// mappers.go
// Model → response DTO conversions. Handlers never serialize models
// directly — the Worker model carries a password hash.

import (
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/shopspring/decimal"
)

func branchToResponse(b *model.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:       b.ID.String(),
		Name:     b.Name,
		Location: b.Location,
		Phone:    b.Phone,
		ImgURL:   b.ImgURL,
		IsActive: b.IsActive,
	}
}

func workerToResponse(w *model.Worker) dto.WorkerResponse {
	assignments := make([]dto.RoleAssignmentResponse, 0, len(w.Assignments))
	for _, a := range w.Assignments {
		resp := dto.RoleAssignmentResponse{
			BranchID: a.BranchID.String(),
			Role:     a.Role,
			IsActive: a.IsActive,
		}
		if a.Branch != nil {
			resp.Branch = a.Branch.Name
		}
		assignments = append(assignments, resp)
	}
	return dto.WorkerResponse{
		ID:            w.ID.String(),
		Username:      w.Username,
		Name:          w.Name,
		Email:         w.Email,
		ImgURL:        w.ImgURL,
		IsOwner:       w.IsOwner,
		IsAdmin:       w.IsAdmin,
		CurrentStatus: w.CurrentStatus,
		IsActive:      w.IsActive,
		Assignments:   assignments,
	}
}

func sessionToResponse(s *model.WorkSession) dto.WorkSessionResponse {
	resp := dto.WorkSessionResponse{
		ID:              s.ID.String(),
		WorkerID:        s.WorkerID.String(),
		BranchID:        s.BranchID.String(),
		Status:          s.Status,
		OpenedAt:        s.OpenedAt.Format(time.RFC3339),
		DurationMinutes: s.DurationMinutes,
		AutoClosed:      s.AutoClosed,
		Note:            s.Note,
	}
	if s.ClosedAt != nil {
		closed := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	if s.Worker != nil {
		resp.Worker = s.Worker.Name
	}
	if s.Branch != nil {
		resp.Branch = s.Branch.Name
	}
	return resp
}

func categoryToResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID.String(),
		BranchID:    c.BranchID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

func itemToResponse(i *model.InventoryItem) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:          i.ID.String(),
		BranchID:    i.BranchID.String(),
		Name:        i.Name,
		Description: i.Description,
		Barcode:     i.Barcode,
		Price:       i.Price,
		Cost:        i.Cost,
		Stock:       i.Stock,
		LowStockAt:  i.LowStockAt,
		ImgURL:      i.ImgURL,
		IsActive:    i.IsActive,
	}
	if i.CategoryID != nil {
		id := i.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	resp := dto.StockMovementResponse{
		ID:          m.ID.String(),
		ItemID:      m.ItemID.String(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.Item != nil {
		resp.Item = m.Item.Name
	}
	if m.ReferenceID != nil {
		ref := m.ReferenceID.String()
		resp.ReferenceID = &ref
	}
	return resp
}

func discountToResponse(d *model.Discount) dto.DiscountResponse {
	resp := dto.DiscountResponse{
		ID:       d.ID.String(),
		Name:     d.Name,
		Type:     d.Type,
		Value:    d.Value,
		Scope:    d.Scope,
		IsActive: d.IsActive,
	}
	if d.BranchID != nil {
		id := d.BranchID.String()
		resp.BranchID = &id
	}
	if d.StartsAt != nil {
		t := d.StartsAt.Format(time.RFC3339)
		resp.StartsAt = &t
	}
	if d.EndsAt != nil {
		t := d.EndsAt.Format(time.RFC3339)
		resp.EndsAt = &t
	}
	return resp
}

func orderToResponse(o *model.Order, change decimal.Decimal) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, line := range o.Items {
		item := dto.OrderItemResponse{
			ItemID:       line.ItemID.String(),
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			LineDiscount: line.LineDiscount,
			Subtotal:     line.Subtotal,
		}
		if line.Item != nil {
			item.Item = line.Item.Name
		}
		items = append(items, item)
	}

	payments := make([]dto.OrderPaymentResponse, 0, len(o.Payments))
	for _, p := range o.Payments {
		payments = append(payments, dto.OrderPaymentResponse{Method: p.Method, Amount: p.Amount})
	}

	return dto.OrderResponse{
		ID:            o.ID.String(),
		Number:        o.Number,
		BranchID:      o.BranchID.String(),
		WorkerID:      o.WorkerID.String(),
		Items:         items,
		Payments:      payments,
		Subtotal:      o.Subtotal,
		DiscountTotal: o.DiscountTotal,
		Total:         o.Total,
		Change:        change,
		Status:        o.Status,
		StockConflict: o.StockConflict,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}
