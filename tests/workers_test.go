package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── In-memory BranchRepository stub ──────────────────────────────────────────

type stubBranchRepo struct {
	branches map[uuid.UUID]*model.Branch
}

func newStubBranchRepo() *stubBranchRepo {
	return &stubBranchRepo{branches: make(map[uuid.UUID]*model.Branch)}
}

func (r *stubBranchRepo) Create(_ context.Context, b *model.Branch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.branches[b.ID] = b
	return nil
}

func (r *stubBranchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return b, nil
}

func (r *stubBranchRepo) List(_ context.Context, active string) ([]model.Branch, error) {
	var out []model.Branch
	for _, b := range r.branches {
		switch active {
		case "false":
			if b.IsActive {
				continue
			}
		case "all":
		default:
			if !b.IsActive {
				continue
			}
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBranchRepo) Update(_ context.Context, b *model.Branch) error {
	r.branches[b.ID] = b
	return nil
}

func (r *stubBranchRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	b, ok := r.branches[id]
	if !ok {
		return errors.New("record not found")
	}
	b.IsActive = false
	return nil
}

func (r *stubBranchRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	b, ok := r.branches[id]
	if !ok {
		return errors.New("record not found")
	}
	b.IsActive = true
	return nil
}

var _ repository.BranchRepository = (*stubBranchRepo)(nil)

func seedBranch(repo *stubBranchRepo, name string) *model.Branch {
	b := &model.Branch{ID: uuid.New(), Name: name, IsActive: true}
	repo.branches[b.ID] = b
	return b
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateWorker_RequiresAssignment(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	branchRepo := newStubBranchRepo()
	svc := service.NewWorkerService(workerRepo, branchRepo, nil)

	_, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Username: "newbie",
		Name:     "New Worker",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, service.ErrNoAssignments)
}

func TestCreateWorker_AllInactiveAssignmentsRejected(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	branchRepo := newStubBranchRepo()
	branch := seedBranch(branchRepo, "Downtown")
	svc := service.NewWorkerService(workerRepo, branchRepo, nil)

	inactive := false
	_, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Username: "benched",
		Name:     "Benched Worker",
		Password: "secret123",
		Assignments: []dto.AssignmentInput{
			{BranchID: branch.ID.String(), Role: model.RoleWorker, IsActive: &inactive},
		},
	})
	assert.ErrorIs(t, err, service.ErrNoAssignments)
	assert.Empty(t, workerRepo.workers)
}

func TestCreateWorker_AdminNeedsNoAssignment(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	branchRepo := newStubBranchRepo()
	svc := service.NewWorkerService(workerRepo, branchRepo, nil)

	w, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Username: "boss",
		Name:     "The Boss",
		Password: "secret123",
		IsAdmin:  true,
	})
	require.NoError(t, err)
	assert.True(t, w.IsAdmin)
	assert.Empty(t, w.Assignments)
}

func TestCreateWorker_HashesPasswordAndStoresAssignments(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	branchRepo := newStubBranchRepo()
	branch := seedBranch(branchRepo, "Downtown")
	svc := service.NewWorkerService(workerRepo, branchRepo, nil)

	w, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Username: "cashier",
		Name:     "Cashier One",
		Password: "secret123",
		Assignments: []dto.AssignmentInput{
			{BranchID: branch.ID.String(), Role: model.RoleWorker},
		},
	})
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", w.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte("secret123")))
	require.Len(t, w.Assignments, 1)
	assert.Equal(t, branch.ID, w.Assignments[0].BranchID)
	assert.Equal(t, model.RoleWorker, w.Assignments[0].Role)
}

func TestCreateWorker_RejectsUnknownBranch(t *testing.T) {
	svc := service.NewWorkerService(newStubWorkerRepo(), newStubBranchRepo(), nil)

	_, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Username: "cashier",
		Name:     "Cashier One",
		Password: "secret123",
		Assignments: []dto.AssignmentInput{
			{BranchID: uuid.NewString(), Role: model.RoleWorker},
		},
	})
	assert.ErrorContains(t, err, "branch not found")
}

func TestCreateWorker_RejectsDuplicateBranch(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	branchRepo := newStubBranchRepo()
	branch := seedBranch(branchRepo, "Downtown")
	svc := service.NewWorkerService(workerRepo, branchRepo, nil)

	_, err := svc.Create(context.Background(), dto.CreateWorkerRequest{
		Username: "cashier",
		Name:     "Cashier One",
		Password: "secret123",
		Assignments: []dto.AssignmentInput{
			{BranchID: branch.ID.String(), Role: model.RoleWorker},
			{BranchID: branch.ID.String(), Role: model.RoleManager},
		},
	})
	assert.ErrorContains(t, err, "duplicate branch")
}

func TestReplaceAssignments_SwapsWholeSet(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	branchRepo := newStubBranchRepo()
	first := seedBranch(branchRepo, "Downtown")
	second := seedBranch(branchRepo, "Uptown")
	svc := service.NewWorkerService(workerRepo, branchRepo, nil)

	w := seedWorker(t, workerRepo, "cashier", "secret123", false,
		model.RoleAssignment{BranchID: first.ID, Role: model.RoleWorker, IsActive: true})

	updated, err := svc.ReplaceAssignments(context.Background(), w.ID, dto.ReplaceAssignmentsRequest{
		Assignments: []dto.AssignmentInput{
			{BranchID: second.ID.String(), Role: model.RoleManager},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Assignments, 1)
	assert.Equal(t, second.ID, updated.Assignments[0].BranchID)
	assert.Equal(t, model.RoleManager, updated.Assignments[0].Role)
}

func TestReplaceAssignments_EmptySetRejectedForNonAdmin(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	branchRepo := newStubBranchRepo()
	branch := seedBranch(branchRepo, "Downtown")
	svc := service.NewWorkerService(workerRepo, branchRepo, nil)

	w := seedWorker(t, workerRepo, "cashier", "secret123", false,
		model.RoleAssignment{BranchID: branch.ID, Role: model.RoleWorker, IsActive: true})

	_, err := svc.ReplaceAssignments(context.Background(), w.ID, dto.ReplaceAssignmentsRequest{})
	assert.ErrorIs(t, err, service.ErrNoAssignments)

	// The original assignment must survive the rejected replace.
	assignments, _ := workerRepo.ListAssignments(context.Background(), w.ID)
	require.Len(t, assignments, 1)
	assert.Equal(t, branch.ID, assignments[0].BranchID)
}

func TestReplaceAssignments_AllInactiveSetRejectedForNonAdmin(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	branchRepo := newStubBranchRepo()
	branch := seedBranch(branchRepo, "Downtown")
	svc := service.NewWorkerService(workerRepo, branchRepo, nil)

	w := seedWorker(t, workerRepo, "cashier", "secret123", false,
		model.RoleAssignment{BranchID: branch.ID, Role: model.RoleWorker, IsActive: true})

	inactive := false
	_, err := svc.ReplaceAssignments(context.Background(), w.ID, dto.ReplaceAssignmentsRequest{
		Assignments: []dto.AssignmentInput{
			{BranchID: branch.ID.String(), Role: model.RoleWorker, IsActive: &inactive},
		},
	})
	assert.ErrorIs(t, err, service.ErrNoAssignments)

	assignments, _ := workerRepo.ListAssignments(context.Background(), w.ID)
	require.Len(t, assignments, 1)
	assert.True(t, assignments[0].IsActive)
}

func TestDeactivateWorker_OwnerProtected(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	svc := service.NewWorkerService(workerRepo, newStubBranchRepo(), nil)

	owner := seedWorker(t, workerRepo, "owner", "secret123", true)
	owner.IsOwner = true

	err := svc.Deactivate(context.Background(), owner.ID)
	assert.ErrorContains(t, err, "owner")
	assert.True(t, workerRepo.workers[owner.ID].IsActive)
}

func TestUpdateWorker_ChangesPassword(t *testing.T) {
	workerRepo := newStubWorkerRepo()
	svc := service.NewWorkerService(workerRepo, newStubBranchRepo(), nil)
	w := seedWorker(t, workerRepo, "cashier", "oldpass", true)

	updated, err := svc.Update(context.Background(), w.ID, dto.UpdateWorkerRequest{Password: "newpass1"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass1")))
}
