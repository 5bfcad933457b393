package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AnalyticsService interface {
	Summary(ctx context.Context, filter dto.AnalyticsFilter) (*dto.SalesSummaryResponse, error)
	TopItems(ctx context.Context, filter dto.AnalyticsFilter, limit int) ([]dto.TopItemResponse, error)
	DailySeries(ctx context.Context, filter dto.AnalyticsFilter) ([]dto.DailyPoint, error)
}

type analyticsService struct {
	orders repository.OrderRepository
}

func NewAnalyticsService(orders repository.OrderRepository) AnalyticsService {
	return &analyticsService{orders: orders}
}

func (s *analyticsService) Summary(ctx context.Context, filter dto.AnalyticsFilter) (*dto.SalesSummaryResponse, error) {
	branchID, orders, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &dto.SalesSummaryResponse{
		BranchID:      branchID.String(),
		From:          filter.From,
		To:            filter.To,
		Gross:         decimal.Zero,
		DiscountTotal: decimal.Zero,
		Net:           decimal.Zero,
		AverageTicket: decimal.Zero,
		Tenders:       []dto.TenderBreakdown{},
	}

	tenderAmounts := map[string]decimal.Decimal{}
	tenderCounts := map[string]int{}

	for _, o := range orders {
		summary.OrderCount++
		summary.Gross = summary.Gross.Add(o.Subtotal)
		summary.DiscountTotal = summary.DiscountTotal.Add(o.DiscountTotal)
		summary.Net = summary.Net.Add(o.Total)
		for _, p := range o.Payments {
			tenderAmounts[p.Method] = tenderAmounts[p.Method].Add(p.Amount)
			tenderCounts[p.Method]++
		}
	}
	if summary.OrderCount > 0 {
		summary.AverageTicket = summary.Net.Div(decimal.NewFromInt(int64(summary.OrderCount))).Round(2)
	}

	methods := make([]string, 0, len(tenderAmounts))
	for m := range tenderAmounts {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, m := range methods {
		summary.Tenders = append(summary.Tenders, dto.TenderBreakdown{
			Method: m,
			Amount: tenderAmounts[m],
			Count:  tenderCounts[m],
		})
	}
	return summary, nil
}

func (s *analyticsService) TopItems(ctx context.Context, filter dto.AnalyticsFilter, limit int) ([]dto.TopItemResponse, error) {
	_, orders, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	type acc struct {
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	byItem := map[uuid.UUID]*acc{}

	for _, o := range orders {
		for _, line := range o.Items {
			a, ok := byItem[line.ItemID]
			if !ok {
				a = &acc{revenue: decimal.Zero}
				if line.Item != nil {
					a.name = line.Item.Name
				}
				byItem[line.ItemID] = a
			}
			a.quantity += line.Quantity
			a.revenue = a.revenue.Add(line.Subtotal.Sub(line.LineDiscount))
		}
	}

	top := make([]dto.TopItemResponse, 0, len(byItem))
	for id, a := range byItem {
		top = append(top, dto.TopItemResponse{
			ItemID:   id.String(),
			Name:     a.name,
			Quantity: a.quantity,
			Revenue:  a.revenue,
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Revenue.GreaterThan(top[j].Revenue)
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (s *analyticsService) DailySeries(ctx context.Context, filter dto.AnalyticsFilter) ([]dto.DailyPoint, error) {
	_, orders, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	from, _ := time.Parse("2006-01-02", filter.From)
	to, _ := time.Parse("2006-01-02", filter.To)

	counts := map[string]int{}
	nets := map[string]decimal.Decimal{}
	for _, o := range orders {
		day := o.CreatedAt.Format("2006-01-02")
		counts[day]++
		nets[day] = nets[day].Add(o.Total)
	}

	// Emit every day in the range so charts show zero-sale gaps.
	var series []dto.DailyPoint
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		net := nets[day]
		series = append(series, dto.DailyPoint{
			Date:       day,
			OrderCount: counts[day],
			Net:        net,
		})
	}
	return series, nil
}

func (s *analyticsService) load(ctx context.Context, filter dto.AnalyticsFilter) (uuid.UUID, []model.Order, error) {
	branchID, err := uuid.Parse(filter.BranchID)
	if err != nil {
		return uuid.Nil, nil, errors.New("invalid branch id")
	}
	if filter.From == "" || filter.To == "" {
		return uuid.Nil, nil, errors.New("from and to dates are required")
	}
	if _, err := time.Parse("2006-01-02", filter.From); err != nil {
		return uuid.Nil, nil, errors.New("invalid from date, expected YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", filter.To); err != nil {
		return uuid.Nil, nil, errors.New("invalid to date, expected YYYY-MM-DD")
	}

	orders, err := s.orders.ListRange(ctx, branchID, filter.From, filter.To, model.OrderCompleted)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return branchID, orders, nil
}
