package model

import (
	"time"

	"github.com/google/uuid"
)

// Branch represents a physical business location.
type Branch struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"uniqueIndex;not null"`
	Location *string
	Phone    *string
	// ImgURL references an externally hosted image; the service never stores blobs.
	ImgURL    *string `gorm:"column:img_url"`
	IsActive  bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
