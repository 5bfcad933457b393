package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// WorkSession represents one clock-in/clock-out attendance record.
type WorkSession struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkerID uuid.UUID `gorm:"type:uuid;index;not null"`
	BranchID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status   string    `gorm:"type:varchar(20);not null;default:'open'"`
	OpenedAt time.Time `gorm:"not null"`
	ClosedAt *time.Time
	// DurationMinutes is computed at close.
	DurationMinutes *int
	// AutoClosed marks sessions closed by the shift watchdog, not the worker.
	AutoClosed bool `gorm:"not null;default:false"`
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Worker *Worker `gorm:"foreignKey:WorkerID"`
	Branch *Branch `gorm:"foreignKey:BranchID"`
}
