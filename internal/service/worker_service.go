package service

import (
	"context"
	"errors"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrNoAssignments = errors.New("worker must hold at least one active branch assignment")

// hasActiveAssignment reports whether any assignment in the set is active.
// Omitted is_active defaults to true, matching buildAssignments.
func hasActiveAssignment(inputs []dto.AssignmentInput) bool {
	for _, in := range inputs {
		if in.IsActive == nil || *in.IsActive {
			return true
		}
	}
	return false
}

type WorkerService interface {
	Create(ctx context.Context, req dto.CreateWorkerRequest) (*model.Worker, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Worker, error)
	List(ctx context.Context, includeInactive bool) ([]model.Worker, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.Worker, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateWorkerRequest) (*model.Worker, error)
	ReplaceAssignments(ctx context.Context, id uuid.UUID, req dto.ReplaceAssignmentsRequest) (*model.Worker, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type workerService struct {
	repo     repository.WorkerRepository
	branches repository.BranchRepository
	rt       realtime.Publisher
}

func NewWorkerService(repo repository.WorkerRepository, branches repository.BranchRepository, rt realtime.Publisher) WorkerService {
	return &workerService{repo: repo, branches: branches, rt: rt}
}

func (s *workerService) Create(ctx context.Context, req dto.CreateWorkerRequest) (*model.Worker, error) {
	// Non-admin accounts are useless without a branch to work at. A set of
	// entirely inactive assignments counts the same as no assignments.
	if !req.IsAdmin && !req.IsOwner && !hasActiveAssignment(req.Assignments) {
		return nil, ErrNoAssignments
	}

	assignments, err := s.buildAssignments(ctx, req.Assignments)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	worker := &model.Worker{
		Username:      req.Username,
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		ImgURL:        req.ImgURL,
		IsOwner:       req.IsOwner,
		IsAdmin:       req.IsOwner || req.IsAdmin,
		CurrentStatus: model.StatusClockedOut,
		IsActive:      true,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx != nil {
			if err := tx.Create(worker).Error; err != nil {
				return err
			}
		} else {
			if err := s.repo.Create(ctx, worker); err != nil {
				return err
			}
		}
		for i := range assignments {
			assignments[i].WorkerID = worker.ID
			if err := s.repo.CreateAssignmentTx(tx, &assignments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, a := range assignments {
		s.publish(ctx, a.BranchID, worker.ID, "created")
	}
	return s.repo.FindByID(ctx, worker.ID)
}

func (s *workerService) Get(ctx context.Context, id uuid.UUID) (*model.Worker, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *workerService) List(ctx context.Context, includeInactive bool) ([]model.Worker, error) {
	if includeInactive {
		return s.repo.ListAll(ctx)
	}
	return s.repo.List(ctx)
}

func (s *workerService) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.Worker, error) {
	return s.repo.ListByBranch(ctx, branchID)
}

func (s *workerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateWorkerRequest) (*model.Worker, error) {
	worker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("worker not found")
	}

	if req.Name != "" {
		worker.Name = req.Name
	}
	if req.Email != nil {
		worker.Email = req.Email
	}
	if req.ImgURL != nil {
		worker.ImgURL = req.ImgURL
	}
	if req.IsAdmin != nil && !worker.IsOwner {
		worker.IsAdmin = *req.IsAdmin
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		worker.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, worker); err != nil {
		return nil, err
	}
	s.publishAll(ctx, worker, "updated")
	return worker, nil
}

// ReplaceAssignments swaps the whole assignment set in one transaction so a
// concurrent reader never observes the worker with zero assignments.
func (s *workerService) ReplaceAssignments(ctx context.Context, id uuid.UUID, req dto.ReplaceAssignmentsRequest) (*model.Worker, error) {
	worker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("worker not found")
	}
	if !worker.IsAdmin && !worker.IsOwner && !hasActiveAssignment(req.Assignments) {
		return nil, ErrNoAssignments
	}

	assignments, err := s.buildAssignments(ctx, req.Assignments)
	if err != nil {
		return nil, err
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteAssignmentsTx(tx, id); err != nil {
			return err
		}
		for i := range assignments {
			assignments[i].WorkerID = id
			if err := s.repo.CreateAssignmentTx(tx, &assignments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	worker, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishAll(ctx, worker, "updated")
	return worker, nil
}

func (s *workerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	worker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("worker not found")
	}
	if worker.IsOwner {
		return errors.New("owner account cannot be deactivated")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publishAll(ctx, worker, "deleted")
	return nil
}

func (s *workerService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return err
	}
	worker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.publishAll(ctx, worker, "updated")
	return nil
}

func (s *workerService) buildAssignments(ctx context.Context, inputs []dto.AssignmentInput) ([]model.RoleAssignment, error) {
	assignments := make([]model.RoleAssignment, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))
	for _, in := range inputs {
		branchID, err := uuid.Parse(in.BranchID)
		if err != nil {
			return nil, errors.New("invalid branch id")
		}
		if seen[branchID] {
			return nil, errors.New("duplicate branch in assignments")
		}
		seen[branchID] = true

		branch, err := s.branches.FindByID(ctx, branchID)
		if err != nil || !branch.IsActive {
			return nil, errors.New("branch not found or inactive")
		}

		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		assignments = append(assignments, model.RoleAssignment{
			BranchID: branchID,
			Role:     in.Role,
			IsActive: active,
		})
	}
	return assignments, nil
}

func (s *workerService) publish(ctx context.Context, branchID, workerID uuid.UUID, action string) {
	if s.rt == nil {
		return
	}
	s.rt.Publish(ctx, realtime.Event{
		Collection: "workers",
		BranchID:   branchID.String(),
		EntityID:   workerID.String(),
		Action:     action,
	})
}

func (s *workerService) publishAll(ctx context.Context, worker *model.Worker, action string) {
	for _, a := range worker.Assignments {
		s.publish(ctx, a.BranchID, worker.ID, action)
	}
}
