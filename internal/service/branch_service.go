package service

import (
	"context"
	"errors"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/google/uuid"
)

type BranchService interface {
	Create(ctx context.Context, req dto.CreateBranchRequest) (*model.Branch, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	List(ctx context.Context, active string) ([]model.Branch, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBranchRequest) (*model.Branch, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type branchService struct {
	repo repository.BranchRepository
	rt   realtime.Publisher
}

func NewBranchService(repo repository.BranchRepository, rt realtime.Publisher) BranchService {
	return &branchService{repo: repo, rt: rt}
}

func (s *branchService) Create(ctx context.Context, req dto.CreateBranchRequest) (*model.Branch, error) {
	branch := &model.Branch{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
		ImgURL:   req.ImgURL,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	s.publish(ctx, branch.ID, "created")
	return branch, nil
}

func (s *branchService) Get(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *branchService) List(ctx context.Context, active string) ([]model.Branch, error) {
	return s.repo.List(ctx, active)
}

func (s *branchService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBranchRequest) (*model.Branch, error) {
	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("branch not found")
	}

	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.Location != nil {
		branch.Location = req.Location
	}
	if req.Phone != nil {
		branch.Phone = req.Phone
	}
	if req.ImgURL != nil {
		branch.ImgURL = req.ImgURL
	}

	if err := s.repo.Update(ctx, branch); err != nil {
		return nil, err
	}
	s.publish(ctx, branch.ID, "updated")
	return branch, nil
}

func (s *branchService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("branch not found")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, "deleted")
	return nil
}

func (s *branchService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, "updated")
	return nil
}

func (s *branchService) publish(ctx context.Context, id uuid.UUID, action string) {
	if s.rt == nil {
		return
	}
	s.rt.Publish(ctx, realtime.Event{
		Collection: "branches",
		BranchID:   id.String(),
		EntityID:   id.String(),
		Action:     action,
	})
}
