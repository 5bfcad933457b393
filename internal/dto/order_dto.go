package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemInput struct {
	ItemID   string `json:"item_id"  validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type OrderPaymentInput struct {
	Method string          `json:"method" validate:"required,oneof=cash card transfer wallet"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

type RegisterOrderRequest struct {
	BranchID      string              `json:"branch_id" validate:"required,uuid"`
	Items         []OrderItemInput    `json:"items"     validate:"required,min=1,dive"`
	Payments      []OrderPaymentInput `json:"payments"  validate:"required,min=1,dive"`
	DiscountID    *string             `json:"discount_id" validate:"omitempty,uuid"`
	ClientRef     *string             `json:"client_ref"`
	CustomerEmail *string             `json:"customer_email" validate:"omitempty,email"`
}

type VoidOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// OrderFilter narrows order listings. Date is "2006-01-02" (default: today).
type OrderFilter struct {
	BranchID string
	Status   string
	Date     string
	Page     int
	Limit    int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ItemID       string          `json:"item_id"`
	Item         string          `json:"item,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineDiscount decimal.Decimal `json:"line_discount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type OrderPaymentResponse struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

type OrderResponse struct {
	ID            string                 `json:"id"`
	Number        int                    `json:"number"`
	BranchID      string                 `json:"branch_id"`
	WorkerID      string                 `json:"worker_id"`
	Items         []OrderItemResponse    `json:"items"`
	Payments      []OrderPaymentResponse `json:"payments"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	DiscountTotal decimal.Decimal        `json:"discount_total"`
	Total         decimal.Decimal        `json:"total"`
	Change        decimal.Decimal        `json:"change"`
	Status        string                 `json:"status"`
	StockConflict bool                   `json:"stock_conflict"`
	CreatedAt     string                 `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
