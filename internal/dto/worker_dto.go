package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AssignmentInput struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
	Role     string `json:"role"      validate:"required,oneof=worker manager"`
	IsActive *bool  `json:"is_active"`
}

type CreateWorkerRequest struct {
	Username    string            `json:"username" validate:"required,min=3"`
	Name        string            `json:"name"     validate:"required,min=2"`
	Email       *string           `json:"email"    validate:"omitempty,email"`
	Password    string            `json:"password" validate:"required,min=6"`
	ImgURL      *string           `json:"img_url"  validate:"omitempty,url"`
	IsOwner     bool              `json:"is_owner"`
	IsAdmin     bool              `json:"is_admin"`
	Assignments []AssignmentInput `json:"assignments" validate:"dive"`
}

type UpdateWorkerRequest struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"omitempty,min=6"`
	ImgURL   *string `json:"img_url"  validate:"omitempty,url"`
	IsAdmin  *bool   `json:"is_admin"`
}

// ReplaceAssignmentsRequest swaps a worker's whole assignment set atomically.
type ReplaceAssignmentsRequest struct {
	Assignments []AssignmentInput `json:"assignments" validate:"required,dive"`
}
