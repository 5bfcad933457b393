package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/config"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/escpos"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/infra"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/router"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// NewDatabase runs the migrations itself.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	hub := realtime.NewHub(rdb)

	// Start goroutine worker pool for async receipt delivery (print, PDF,
	// email). Worker handlers are wired here (composition root) so the pool
	// has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	printer := escpos.NewPrinter(cfg.PrinterAddr)
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	orderRepo := repository.NewOrderRepository(db)
	sessionRepo := repository.NewWorkSessionRepository(db)
	workerRepo := repository.NewWorkerRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Receipt: worker.NewReceiptWorker(orderRepo, printer, dispatcher, rdb, cfg.StoreName, cfg.PDFStoragePath),
		Email:   worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Shift watchdog closes sessions workers forgot to clock out of.
	worker.StartShiftWatchdog(ctx, worker.ShiftWatchdogConfig{
		Sessions:      sessionRepo,
		Workers:       workerRepo,
		Publisher:     hub,
		MaxShiftHours: cfg.MaxShiftHours,
	})

	r := router.New(cfg, db, rdb, hub)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: /v1/stream holds SSE connections open indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("POS backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
