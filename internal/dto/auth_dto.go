package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RoleAssignmentResponse struct {
	BranchID string `json:"branch_id"`
	Branch   string `json:"branch,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type WorkerResponse struct {
	ID            string                   `json:"id"`
	Username      string                   `json:"username"`
	Name          string                   `json:"name"`
	Email         *string                  `json:"email,omitempty"`
	ImgURL        *string                  `json:"img_url,omitempty"`
	IsOwner       bool                     `json:"is_owner"`
	IsAdmin       bool                     `json:"is_admin"`
	CurrentStatus string                   `json:"current_status"`
	IsActive      bool                     `json:"is_active"`
	Assignments   []RoleAssignmentResponse `json:"assignments"`
}

type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int            `json:"expires_in"`
	Worker       WorkerResponse `json:"worker"`
}
