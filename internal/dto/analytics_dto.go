package dto

import "github.com/shopspring/decimal"

// AnalyticsFilter scopes reports to a branch and date range ("2006-01-02").
type AnalyticsFilter struct {
	BranchID string
	From     string
	To       string
}

type TenderBreakdown struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

type SalesSummaryResponse struct {
	BranchID      string            `json:"branch_id"`
	From          string            `json:"from"`
	To            string            `json:"to"`
	OrderCount    int               `json:"order_count"`
	Gross         decimal.Decimal   `json:"gross"`
	DiscountTotal decimal.Decimal   `json:"discount_total"`
	Net           decimal.Decimal   `json:"net"`
	AverageTicket decimal.Decimal   `json:"average_ticket"`
	Tenders       []TenderBreakdown `json:"tenders"`
}

type TopItemResponse struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailyPoint feeds the dashboard chart: one bucket per calendar day.
type DailyPoint struct {
	Date       string          `json:"date"`
	OrderCount int             `json:"order_count"`
	Net        decimal.Decimal `json:"net"`
}
