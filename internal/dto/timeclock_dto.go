package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ClockInRequest struct {
	BranchID string  `json:"branch_id" validate:"required,uuid"`
	Note     *string `json:"note"`
}

type ClockOutRequest struct {
	Note *string `json:"note"`
}

// SessionFilter narrows work-session listings. Dates are "2006-01-02".
type SessionFilter struct {
	WorkerID string
	BranchID string
	From     string
	To       string
	Page     int
	Limit    int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type WorkSessionResponse struct {
	ID              string  `json:"id"`
	WorkerID        string  `json:"worker_id"`
	Worker          string  `json:"worker,omitempty"`
	BranchID        string  `json:"branch_id"`
	Branch          string  `json:"branch,omitempty"`
	Status          string  `json:"status"`
	OpenedAt        string  `json:"opened_at"`
	ClosedAt        *string `json:"closed_at,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	AutoClosed      bool    `json:"auto_closed"`
	Note            *string `json:"note,omitempty"`
}

type WorkSessionListResponse struct {
	Data  []WorkSessionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// TimesheetResponse is the per-worker total for a date range.
type TimesheetResponse struct {
	WorkerID     string `json:"worker_id"`
	Sessions     int    `json:"sessions"`
	TotalMinutes int    `json:"total_minutes"`
	From         string `json:"from"`
	To           string `json:"to"`
}
