package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	BranchID    string  `json:"branch_id" validate:"required,uuid"`
	Name        string  `json:"name"      validate:"required,min=2"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CreateItemRequest struct {
	BranchID    string          `json:"branch_id"    validate:"required,uuid"`
	CategoryID  *string         `json:"category_id"  validate:"omitempty,uuid"`
	Name        string          `json:"name"         validate:"required,min=2"`
	Description *string         `json:"description"`
	Barcode     *string         `json:"barcode"`
	Price       decimal.Decimal `json:"price"        validate:"required,gt=0"`
	Cost        decimal.Decimal `json:"cost"         validate:"min=0"`
	Stock       int             `json:"stock"        validate:"min=0"`
	LowStockAt  int             `json:"low_stock_at" validate:"min=0"`
	ImgURL      *string         `json:"img_url"      validate:"omitempty,url"`
}

type UpdateItemRequest struct {
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Barcode     *string          `json:"barcode"`
	Price       *decimal.Decimal `json:"price"        validate:"omitempty,gt=0"`
	Cost        *decimal.Decimal `json:"cost"         validate:"omitempty,min=0"`
	LowStockAt  *int             `json:"low_stock_at" validate:"omitempty,min=0"`
	ImgURL      *string          `json:"img_url"      validate:"omitempty,url"`
}

// AdjustStockRequest records a manual stock correction.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ItemFilter narrows catalog listings.
// Active: "" (default, active only) | "false" (inactive) | "all"
type ItemFilter struct {
	BranchID   string
	CategoryID string
	Name       string
	Barcode    string
	Active     string
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID          string  `json:"id"`
	BranchID    string  `json:"branch_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type ItemResponse struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Barcode     *string         `json:"barcode,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	LowStockAt  int             `json:"low_stock_at"`
	ImgURL      *string         `json:"img_url,omitempty"`
	IsActive    bool            `json:"is_active"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ItemID      string  `json:"item_id"`
	Item        string  `json:"item,omitempty"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason,omitempty"`
	ReferenceID *string `json:"reference_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type LowStockAlertResponse struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	Stock      int    `json:"stock"`
	LowStockAt int    `json:"low_stock_at"`
}
