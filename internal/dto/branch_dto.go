package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateBranchRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
	ImgURL   *string `json:"img_url" validate:"omitempty,url"`
}

type UpdateBranchRequest struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
	ImgURL   *string `json:"img_url" validate:"omitempty,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BranchResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	ImgURL   *string `json:"img_url,omitempty"`
	IsActive bool    `json:"is_active"`
}
