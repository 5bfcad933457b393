package worker

import (
	"context"
	"testing"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stubs embed the repository interfaces so only the methods the watchdog
// touches need implementing.

type watchdogSessionStub struct {
	repository.WorkSessionRepository
	open    []model.WorkSession
	updated []*model.WorkSession
}

func (s *watchdogSessionStub) ListOpenedBefore(_ context.Context, cutoff time.Time, _ int) ([]model.WorkSession, error) {
	var out []model.WorkSession
	for _, sess := range s.open {
		if sess.Status == model.SessionOpen && sess.OpenedAt.Before(cutoff) {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *watchdogSessionStub) Update(_ context.Context, sess *model.WorkSession) error {
	s.updated = append(s.updated, sess)
	return nil
}

type watchdogWorkerStub struct {
	repository.WorkerRepository
	statuses map[uuid.UUID]string
}

func (s *watchdogWorkerStub) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s.statuses[id] = status
	return nil
}

func TestCloseOverdueSessions_ClosesAndFlagsOverdue(t *testing.T) {
	workerID := uuid.New()
	overdue := model.WorkSession{
		ID:       uuid.New(),
		WorkerID: workerID,
		BranchID: uuid.New(),
		Status:   model.SessionOpen,
		OpenedAt: time.Now().Add(-20 * time.Hour),
	}
	fresh := model.WorkSession{
		ID:       uuid.New(),
		WorkerID: uuid.New(),
		BranchID: overdue.BranchID,
		Status:   model.SessionOpen,
		OpenedAt: time.Now().Add(-2 * time.Hour),
	}

	sessions := &watchdogSessionStub{open: []model.WorkSession{overdue, fresh}}
	workers := &watchdogWorkerStub{statuses: make(map[uuid.UUID]string)}

	closeOverdueSessions(context.Background(), ShiftWatchdogConfig{
		Sessions:      sessions,
		Workers:       workers,
		MaxShiftHours: 16,
	})

	require.Len(t, sessions.updated, 1)
	closed := sessions.updated[0]
	assert.Equal(t, overdue.ID, closed.ID)
	assert.Equal(t, model.SessionClosed, closed.Status)
	assert.True(t, closed.AutoClosed)
	require.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.DurationMinutes)
	assert.GreaterOrEqual(t, *closed.DurationMinutes, 19*60)

	assert.Equal(t, model.StatusClockedOut, workers.statuses[workerID])
	assert.NotContains(t, workers.statuses, fresh.WorkerID)
}
