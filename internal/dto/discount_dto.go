package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateDiscountRequest struct {
	Name     string          `json:"name"  validate:"required,min=2"`
	Type     string          `json:"type"  validate:"required,oneof=percentage fixed"`
	Value    decimal.Decimal `json:"value" validate:"required,gt=0"`
	Scope    string          `json:"scope" validate:"omitempty,oneof=order item"`
	BranchID *string         `json:"branch_id" validate:"omitempty,uuid"`
	StartsAt *string         `json:"starts_at"` // RFC 3339
	EndsAt   *string         `json:"ends_at"`
}

type UpdateDiscountRequest struct {
	Name     string           `json:"name"`
	Value    *decimal.Decimal `json:"value" validate:"omitempty,gt=0"`
	StartsAt *string          `json:"starts_at"`
	EndsAt   *string          `json:"ends_at"`
	IsActive *bool            `json:"is_active"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DiscountResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Scope    string          `json:"scope"`
	BranchID *string         `json:"branch_id,omitempty"`
	StartsAt *string         `json:"starts_at,omitempty"`
	EndsAt   *string         `json:"ends_at,omitempty"`
	IsActive bool            `json:"is_active"`
}
