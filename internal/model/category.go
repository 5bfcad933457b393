package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies inventory items within a branch.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_branch_category;not null"`
	Name        string    `gorm:"uniqueIndex:idx_branch_category;not null"`
	Description *string
	IsActive    bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization (category → categories).
func (Category) TableName() string { return "categories" }
