package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"

	ScopeOrder = "order"
	ScopeItem  = "item"
)

// Discount is a promotion applicable at order time.
type Discount struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"not null"`
	Type string    `gorm:"type:varchar(20);not null"`
	// Value is a percentage (0–100) for Type=percentage, a money amount otherwise.
	Value decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Scope string          `gorm:"type:varchar(20);not null;default:'order'"`
	// BranchID nil means the discount applies at every branch.
	BranchID *uuid.UUID `gorm:"type:uuid;index"`
	StartsAt *time.Time
	EndsAt   *time.Time
	IsActive bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
