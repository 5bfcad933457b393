package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MovementSale         = "sale"
	MovementManualAdjust = "manual_adjust"
	MovementVoidRestore  = "void_restore"
)

// StockMovement records every stock change on an inventory item.
// Created automatically on sale, manual adjustment, or order void.
// Movements are NEVER modified or deleted.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"` // "sale" | "manual_adjust" | "void_restore"
	Quantity    int       `gorm:"not null"` // positive = in, negative = out
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	// ReferenceID links to the originating Order or manual operation
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Item *InventoryItem `gorm:"foreignKey:ItemID"`
}
