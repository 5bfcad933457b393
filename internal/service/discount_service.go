package service

import (
	"context"
	"errors"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type DiscountService interface {
	Create(ctx context.Context, req dto.CreateDiscountRequest) (*model.Discount, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	List(ctx context.Context, active string) ([]model.Discount, error)
	ListApplicable(ctx context.Context, branchID uuid.UUID, ts time.Time) ([]model.Discount, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateDiscountRequest) (*model.Discount, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type discountService struct {
	repo     repository.DiscountRepository
	branches repository.BranchRepository
	rt       realtime.Publisher
}

func NewDiscountService(repo repository.DiscountRepository, branches repository.BranchRepository, rt realtime.Publisher) DiscountService {
	return &discountService{repo: repo, branches: branches, rt: rt}
}

func (s *discountService) Create(ctx context.Context, req dto.CreateDiscountRequest) (*model.Discount, error) {
	if req.Type == model.DiscountPercentage && req.Value.GreaterThan(hundred) {
		return nil, errors.New("percentage discount cannot exceed 100")
	}

	var branchID *uuid.UUID
	if req.BranchID != nil && *req.BranchID != "" {
		id, err := uuid.Parse(*req.BranchID)
		if err != nil {
			return nil, errors.New("invalid branch id")
		}
		if branch, err := s.branches.FindByID(ctx, id); err != nil || !branch.IsActive {
			return nil, errors.New("branch not found or inactive")
		}
		branchID = &id
	}

	startsAt, err := parseRFC3339(req.StartsAt)
	if err != nil {
		return nil, errors.New("invalid starts_at, expected RFC 3339")
	}
	endsAt, err := parseRFC3339(req.EndsAt)
	if err != nil {
		return nil, errors.New("invalid ends_at, expected RFC 3339")
	}
	if startsAt != nil && endsAt != nil && !endsAt.After(*startsAt) {
		return nil, errors.New("ends_at must be after starts_at")
	}

	scope := req.Scope
	if scope == "" {
		scope = model.ScopeOrder
	}

	discount := &model.Discount{
		Name:     req.Name,
		Type:     req.Type,
		Value:    req.Value,
		Scope:    scope,
		BranchID: branchID,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, discount); err != nil {
		return nil, err
	}
	s.publish(ctx, discount, "created")
	return discount, nil
}

func (s *discountService) Get(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *discountService) List(ctx context.Context, active string) ([]model.Discount, error) {
	return s.repo.List(ctx, active)
}

func (s *discountService) ListApplicable(ctx context.Context, branchID uuid.UUID, ts time.Time) ([]model.Discount, error) {
	return s.repo.ListApplicable(ctx, branchID, ts)
}

func (s *discountService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDiscountRequest) (*model.Discount, error) {
	discount, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("discount not found")
	}

	if req.Name != "" {
		discount.Name = req.Name
	}
	if req.Value != nil {
		if discount.Type == model.DiscountPercentage && req.Value.GreaterThan(hundred) {
			return nil, errors.New("percentage discount cannot exceed 100")
		}
		discount.Value = *req.Value
	}
	if req.StartsAt != nil {
		startsAt, err := parseRFC3339(req.StartsAt)
		if err != nil {
			return nil, errors.New("invalid starts_at, expected RFC 3339")
		}
		discount.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := parseRFC3339(req.EndsAt)
		if err != nil {
			return nil, errors.New("invalid ends_at, expected RFC 3339")
		}
		discount.EndsAt = endsAt
	}
	if discount.StartsAt != nil && discount.EndsAt != nil && !discount.EndsAt.After(*discount.StartsAt) {
		return nil, errors.New("ends_at must be after starts_at")
	}
	if req.IsActive != nil {
		discount.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, discount); err != nil {
		return nil, err
	}
	s.publish(ctx, discount, "updated")
	return discount, nil
}

func (s *discountService) Deactivate(ctx context.Context, id uuid.UUID) error {
	discount, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("discount not found")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, discount, "deleted")
	return nil
}

// ApplyDiscount computes the money taken off an order subtotal. The result is
// rounded to cents and never exceeds the subtotal.
func ApplyDiscount(d *model.Discount, subtotal decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	var off decimal.Decimal
	switch d.Type {
	case model.DiscountPercentage:
		off = subtotal.Mul(d.Value).Div(hundred).Round(2)
	case model.DiscountFixed:
		off = d.Value
	default:
		return decimal.Zero
	}
	if off.GreaterThan(subtotal) {
		return subtotal
	}
	return off
}

// Applicable reports whether the discount is usable at the branch at ts.
func Applicable(d *model.Discount, branchID uuid.UUID, ts time.Time) bool {
	if d == nil || !d.IsActive {
		return false
	}
	if d.BranchID != nil && *d.BranchID != branchID {
		return false
	}
	if d.StartsAt != nil && ts.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && ts.After(*d.EndsAt) {
		return false
	}
	return true
}

func parseRFC3339(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *discountService) publish(ctx context.Context, d *model.Discount, action string) {
	if s.rt == nil {
		return
	}
	branch := ""
	if d.BranchID != nil {
		branch = d.BranchID.String()
	}
	s.rt.Publish(ctx, realtime.Event{
		Collection: "discounts",
		BranchID:   branch,
		EntityID:   d.ID.String(),
		Action:     action,
	})
}
