package service

import (
	"context"
	"errors"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/middleware"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAlreadyClockedIn = errors.New("worker already has an open session")
	ErrNotClockedIn     = errors.New("worker has no open session")
)

type TimeclockService interface {
	ClockIn(ctx context.Context, workerID uuid.UUID, claims *middleware.JWTClaims, req dto.ClockInRequest) (*model.WorkSession, error)
	ClockOut(ctx context.Context, workerID uuid.UUID, req dto.ClockOutRequest) (*model.WorkSession, error)
	CurrentSession(ctx context.Context, workerID uuid.UUID) (*model.WorkSession, error)
	ListSessions(ctx context.Context, filter dto.SessionFilter) ([]model.WorkSession, int64, error)
	Timesheet(ctx context.Context, workerID uuid.UUID, from, to string) (*dto.TimesheetResponse, error)
}

type timeclockService struct {
	sessions repository.WorkSessionRepository
	workers  repository.WorkerRepository
	rt       realtime.Publisher
}

func NewTimeclockService(sessions repository.WorkSessionRepository, workers repository.WorkerRepository, rt realtime.Publisher) TimeclockService {
	return &timeclockService{sessions: sessions, workers: workers, rt: rt}
}

func (s *timeclockService) ClockIn(ctx context.Context, workerID uuid.UUID, claims *middleware.JWTClaims, req dto.ClockInRequest) (*model.WorkSession, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch id")
	}

	// Workers may only clock in at a branch they are assigned to.
	if !middleware.HasBranchRole(claims, req.BranchID, model.RoleWorker, model.RoleManager) {
		return nil, errors.New("worker is not assigned to this branch")
	}

	worker, err := s.workers.FindByID(ctx, workerID)
	if err != nil || !worker.IsActive {
		return nil, errors.New("worker not found or inactive")
	}

	if open, err := s.sessions.FindOpenByWorker(ctx, workerID); err == nil && open != nil && open.Status == model.SessionOpen {
		return nil, ErrAlreadyClockedIn
	}

	session := &model.WorkSession{
		WorkerID: workerID,
		BranchID: branchID,
		Status:   model.SessionOpen,
		OpenedAt: time.Now().UTC(),
		Note:     req.Note,
	}
	// The partial unique index on open sessions backstops a concurrent
	// double clock-in.
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, ErrAlreadyClockedIn
	}

	if err := s.workers.UpdateStatus(ctx, workerID, model.StatusClockedIn); err != nil {
		return nil, err
	}

	s.publish(ctx, session, "created")
	return session, nil
}

func (s *timeclockService) ClockOut(ctx context.Context, workerID uuid.UUID, req dto.ClockOutRequest) (*model.WorkSession, error) {
	session, err := s.sessions.FindOpenByWorker(ctx, workerID)
	if err != nil || session == nil || session.Status != model.SessionOpen {
		return nil, ErrNotClockedIn
	}

	now := time.Now().UTC()
	minutes := int(now.Sub(session.OpenedAt).Minutes())

	session.Status = model.SessionClosed
	session.ClosedAt = &now
	session.DurationMinutes = &minutes
	if req.Note != nil {
		session.Note = req.Note
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	if err := s.workers.UpdateStatus(ctx, workerID, model.StatusClockedOut); err != nil {
		return nil, err
	}

	s.publish(ctx, session, "updated")
	return session, nil
}

func (s *timeclockService) CurrentSession(ctx context.Context, workerID uuid.UUID) (*model.WorkSession, error) {
	session, err := s.sessions.FindOpenByWorker(ctx, workerID)
	if err != nil || session == nil || session.Status != model.SessionOpen {
		return nil, ErrNotClockedIn
	}
	return session, nil
}

func (s *timeclockService) ListSessions(ctx context.Context, filter dto.SessionFilter) ([]model.WorkSession, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.sessions.List(ctx, filter)
}

func (s *timeclockService) Timesheet(ctx context.Context, workerID uuid.UUID, from, to string) (*dto.TimesheetResponse, error) {
	if from == "" || to == "" {
		return nil, errors.New("from and to dates are required")
	}
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return nil, errors.New("invalid from date, expected YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return nil, errors.New("invalid to date, expected YYYY-MM-DD")
	}

	count, minutes, err := s.sessions.SumMinutes(ctx, workerID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.TimesheetResponse{
		WorkerID:     workerID.String(),
		Sessions:     count,
		TotalMinutes: minutes,
		From:         from,
		To:           to,
	}, nil
}

func (s *timeclockService) publish(ctx context.Context, session *model.WorkSession, action string) {
	if s.rt == nil {
		return
	}
	s.rt.Publish(ctx, realtime.Event{
		Collection: "work_sessions",
		BranchID:   session.BranchID.String(),
		EntityID:   session.ID.String(),
		Action:     action,
	})
}
