package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusClockedIn  = "clocked_in"
	StatusClockedOut = "clocked_out"

	RoleWorker  = "worker"
	RoleManager = "manager"
)

// Worker stores a staff account with per-branch role assignments.
type Worker struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string  `gorm:"not null"`
	ImgURL       *string `gorm:"column:img_url"`
	// IsOwner implies IsAdmin; both bypass per-branch role checks.
	IsOwner       bool   `gorm:"not null;default:false"`
	IsAdmin       bool   `gorm:"not null;default:false"`
	CurrentStatus string `gorm:"type:varchar(20);not null;default:'clocked_out'"`
	IsActive      bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Assignments []RoleAssignment `gorm:"foreignKey:WorkerID"`
}

// RoleAssignment is a (branch, role) tuple attached to a worker.
// Role: "worker" | "manager"
type RoleAssignment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_worker_branch;not null"`
	BranchID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_worker_branch;not null"`
	Role     string    `gorm:"type:varchar(20);not null"`
	IsActive bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Branch *Branch `gorm:"foreignKey:BranchID"`
}
