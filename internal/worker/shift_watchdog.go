package worker

// shift_watchdog.go
// Background goroutine that periodically closes work sessions left open past
// the configured maximum shift length. Nobody works a 20-hour shift — they
// forgot to clock out. Auto-closed sessions are flagged for supervisor review.

import (
	"context"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	watchdogTickInterval = time.Minute
	watchdogBatchSize    = 20
)

// ShiftWatchdogConfig holds all dependencies for the watchdog goroutine.
type ShiftWatchdogConfig struct {
	Sessions      repository.WorkSessionRepository
	Workers       repository.WorkerRepository
	Publisher     realtime.Publisher
	MaxShiftHours int
}

// StartShiftWatchdog launches a background goroutine that ticks every minute,
// queries overdue open sessions, and force-closes them.
// It respects the context for graceful shutdown.
func StartShiftWatchdog(ctx context.Context, cfg ShiftWatchdogConfig) {
	go func() {
		ticker := time.NewTicker(watchdogTickInterval)
		defer ticker.Stop()

		log.Info().Int("max_shift_hours", cfg.MaxShiftHours).Msg("shift_watchdog: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("shift_watchdog: shutting down")
				return
			case <-ticker.C:
				closeOverdueSessions(ctx, cfg)
			}
		}
	}()
}

func closeOverdueSessions(ctx context.Context, cfg ShiftWatchdogConfig) {
	cutoff := time.Now().Add(-time.Duration(cfg.MaxShiftHours) * time.Hour)
	sessions, err := cfg.Sessions.ListOpenedBefore(ctx, cutoff, watchdogBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("shift_watchdog: failed to query overdue sessions")
		return
	}
	if len(sessions) == 0 {
		return
	}

	log.Info().Int("count", len(sessions)).Msg("shift_watchdog: closing overdue sessions")

	for i := range sessions {
		s := &sessions[i]

		now := time.Now()
		minutes := int(now.Sub(s.OpenedAt).Minutes())
		s.Status = model.SessionClosed
		s.ClosedAt = &now
		s.DurationMinutes = &minutes
		s.AutoClosed = true

		if err := cfg.Sessions.Update(ctx, s); err != nil {
			log.Error().Err(err).Str("session_id", s.ID.String()).Msg("shift_watchdog: close failed")
			continue
		}
		if err := cfg.Workers.UpdateStatus(ctx, s.WorkerID, model.StatusClockedOut); err != nil {
			log.Error().Err(err).Str("worker_id", s.WorkerID.String()).Msg("shift_watchdog: status flip failed")
		}

		if cfg.Publisher != nil {
			cfg.Publisher.Publish(ctx, realtime.Event{
				Collection: "work_sessions",
				BranchID:   s.BranchID.String(),
				EntityID:   s.ID.String(),
				Action:     "updated",
			})
		}

		log.Warn().
			Str("session_id", s.ID.String()).
			Str("worker_id", s.WorkerID.String()).
			Int("minutes", minutes).
			Msg("shift_watchdog: session auto-closed")
	}
}
