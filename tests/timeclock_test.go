package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/middleware"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory WorkSessionRepository stub ─────────────────────────────────────

type stubSessionRepo struct {
	sessions map[uuid.UUID]*model.WorkSession
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[uuid.UUID]*model.WorkSession)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *model.WorkSession) error {
	// Mirror the partial unique index: one open session per worker.
	for _, existing := range r.sessions {
		if existing.WorkerID == s.WorkerID && existing.Status == model.SessionOpen {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.WorkSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (r *stubSessionRepo) FindOpenByWorker(_ context.Context, workerID uuid.UUID) (*model.WorkSession, error) {
	for _, s := range r.sessions {
		if s.WorkerID == workerID && s.Status == model.SessionOpen {
			return s, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubSessionRepo) Update(_ context.Context, s *model.WorkSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) List(_ context.Context, filter dto.SessionFilter) ([]model.WorkSession, int64, error) {
	var out []model.WorkSession
	for _, s := range r.sessions {
		if filter.WorkerID != "" && s.WorkerID.String() != filter.WorkerID {
			continue
		}
		if filter.BranchID != "" && s.BranchID.String() != filter.BranchID {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSessionRepo) ListOpenedBefore(_ context.Context, cutoff time.Time, limit int) ([]model.WorkSession, error) {
	var out []model.WorkSession
	for _, s := range r.sessions {
		if s.Status == model.SessionOpen && s.OpenedAt.Before(cutoff) {
			out = append(out, *s)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (r *stubSessionRepo) SumMinutes(_ context.Context, workerID uuid.UUID, _, _ string) (int, int, error) {
	count, minutes := 0, 0
	for _, s := range r.sessions {
		if s.WorkerID == workerID && s.Status == model.SessionClosed && s.DurationMinutes != nil {
			count++
			minutes += *s.DurationMinutes
		}
	}
	return count, minutes, nil
}

var _ repository.WorkSessionRepository = (*stubSessionRepo)(nil)

func staffClaims(workerID, branchID uuid.UUID) *middleware.JWTClaims {
	return &middleware.JWTClaims{
		WorkerID: workerID.String(),
		Branches: []middleware.BranchRole{{BranchID: branchID.String(), Role: model.RoleWorker}},
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestClockIn_OpensSessionAndFlipsStatus(t *testing.T) {
	sessions := newStubSessionRepo()
	workers := newStubWorkerRepo()
	branchID := uuid.New()
	w := seedWorker(t, workers, "cashier", "secret123", false,
		model.RoleAssignment{BranchID: branchID, Role: model.RoleWorker, IsActive: true})

	svc := service.NewTimeclockService(sessions, workers, nil)
	session, err := svc.ClockIn(context.Background(), w.ID, staffClaims(w.ID, branchID), dto.ClockInRequest{
		BranchID: branchID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SessionOpen, session.Status)
	assert.Equal(t, branchID, session.BranchID)
	assert.Equal(t, model.StatusClockedIn, workers.workers[w.ID].CurrentStatus)
}

func TestClockIn_TwiceFails(t *testing.T) {
	sessions := newStubSessionRepo()
	workers := newStubWorkerRepo()
	branchID := uuid.New()
	w := seedWorker(t, workers, "cashier", "secret123", false,
		model.RoleAssignment{BranchID: branchID, Role: model.RoleWorker, IsActive: true})

	svc := service.NewTimeclockService(sessions, workers, nil)
	claims := staffClaims(w.ID, branchID)
	_, err := svc.ClockIn(context.Background(), w.ID, claims, dto.ClockInRequest{BranchID: branchID.String()})
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), w.ID, claims, dto.ClockInRequest{BranchID: branchID.String()})
	assert.ErrorIs(t, err, service.ErrAlreadyClockedIn)
}

func TestClockIn_WrongBranchRejected(t *testing.T) {
	sessions := newStubSessionRepo()
	workers := newStubWorkerRepo()
	assigned := uuid.New()
	other := uuid.New()
	w := seedWorker(t, workers, "cashier", "secret123", false,
		model.RoleAssignment{BranchID: assigned, Role: model.RoleWorker, IsActive: true})

	svc := service.NewTimeclockService(sessions, workers, nil)
	_, err := svc.ClockIn(context.Background(), w.ID, staffClaims(w.ID, assigned), dto.ClockInRequest{
		BranchID: other.String(),
	})
	assert.ErrorContains(t, err, "not assigned")
}

func TestClockOut_ClosesSessionWithDuration(t *testing.T) {
	sessions := newStubSessionRepo()
	workers := newStubWorkerRepo()
	branchID := uuid.New()
	w := seedWorker(t, workers, "cashier", "secret123", false,
		model.RoleAssignment{BranchID: branchID, Role: model.RoleWorker, IsActive: true})

	// Open session started two hours ago.
	opened := time.Now().UTC().Add(-2 * time.Hour)
	session := &model.WorkSession{ID: uuid.New(), WorkerID: w.ID, BranchID: branchID, Status: model.SessionOpen, OpenedAt: opened}
	sessions.sessions[session.ID] = session
	workers.workers[w.ID].CurrentStatus = model.StatusClockedIn

	svc := service.NewTimeclockService(sessions, workers, nil)
	closed, err := svc.ClockOut(context.Background(), w.ID, dto.ClockOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.SessionClosed, closed.Status)
	require.NotNil(t, closed.DurationMinutes)
	assert.InDelta(t, 120, *closed.DurationMinutes, 2)
	assert.Equal(t, model.StatusClockedOut, workers.workers[w.ID].CurrentStatus)
}

func TestClockOut_WithoutOpenSession(t *testing.T) {
	svc := service.NewTimeclockService(newStubSessionRepo(), newStubWorkerRepo(), nil)
	_, err := svc.ClockOut(context.Background(), uuid.New(), dto.ClockOutRequest{})
	assert.ErrorIs(t, err, service.ErrNotClockedIn)
}

func TestTimesheet_SumsClosedSessions(t *testing.T) {
	sessions := newStubSessionRepo()
	workers := newStubWorkerRepo()
	w := seedWorker(t, workers, "cashier", "secret123", false)

	for _, minutes := range []int{480, 360} {
		m := minutes
		closedAt := time.Now().UTC()
		s := &model.WorkSession{
			ID: uuid.New(), WorkerID: w.ID, BranchID: uuid.New(),
			Status: model.SessionClosed, OpenedAt: closedAt.Add(-time.Duration(m) * time.Minute),
			ClosedAt: &closedAt, DurationMinutes: &m,
		}
		sessions.sessions[s.ID] = s
	}

	svc := service.NewTimeclockService(sessions, workers, nil)
	sheet, err := svc.Timesheet(context.Background(), w.ID, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 2, sheet.Sessions)
	assert.Equal(t, 840, sheet.TotalMinutes)
}

func TestTimesheet_RequiresDates(t *testing.T) {
	svc := service.NewTimeclockService(newStubSessionRepo(), newStubWorkerRepo(), nil)
	_, err := svc.Timesheet(context.Background(), uuid.New(), "", "")
	assert.ErrorContains(t, err, "required")
}
