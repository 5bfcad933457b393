package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a sellable product belonging to one branch.
type InventoryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	Name        string     `gorm:"index;not null"`
	Description *string
	Barcode     *string         `gorm:"uniqueIndex"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	// LowStockAt is the alert threshold; stock <= LowStockAt shows up in alerts.
	LowStockAt int     `gorm:"not null;default:5"`
	ImgURL     *string `gorm:"column:img_url"`
	IsActive   bool    `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
