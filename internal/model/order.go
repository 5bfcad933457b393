package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderCompleted = "completed"
	OrderVoided    = "voided"
)

// Order is a storefront sale.
type Order struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number   int       `gorm:"uniqueIndex;not null"`
	BranchID uuid.UUID `gorm:"type:uuid;index;not null"`
	WorkerID uuid.UUID `gorm:"type:uuid;not null"`
	// ClientRef deduplicates replays from offline storefronts.
	ClientRef     *string    `gorm:"index"`
	DiscountID    *uuid.UUID `gorm:"type:uuid"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'completed'"`
	// StockConflict flags orders accepted with a compensated stock deficit.
	StockConflict bool `gorm:"not null;default:false"`
	VoidReason    *string
	CustomerEmail *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items    []OrderItem    `gorm:"foreignKey:OrderID"`
	Payments []OrderPayment `gorm:"foreignKey:OrderID"`
}

// OrderItem is one sold line. Prices are captured at sale time — later
// catalog edits never rewrite history.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineDiscount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Item *InventoryItem `gorm:"foreignKey:ItemID"`
}

// OrderPayment is one tender line.
// Method: "cash" | "card" | "transfer" | "wallet"
type OrderPayment struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Method  string          `gorm:"type:varchar(20);not null"`
	Amount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
