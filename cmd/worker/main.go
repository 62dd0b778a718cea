package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"donorbook/internal/bootstrap"
	"donorbook/internal/infra"
	"donorbook/internal/notify"
	"donorbook/internal/storage"
	"donorbook/internal/worker"
)

const runTimeout = 10 * time.Minute

func main() {
	once := flag.Bool("once", false, "run the monthly cycle immediately and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: startup failed")
	}
	defer rt.Close()

	job := &worker.MonthlyJob{
		Payments:     rt.Payments,
		Stats:        rt.Stats,
		Expenses:     rt.Expenses,
		Exports:      rt.Exports,
		Organization: cfg.OrganizationName,
		Logger:       logger,
	}

	if cfg.ArchivePath != "" {
		archivePath := cfg.ArchivePath
		if abs, err := filepath.Abs(archivePath); err == nil {
			archivePath = abs
		}
		store, err := storage.NewFileStore(archivePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("worker: failed to configure archive storage")
		}
		job.Store = store
	} else {
		logger.Warn().Msg("worker: ARCHIVE_PATH not set, month archives are skipped")
	}

	if cfg.MailEnabled() {
		mailer, err := notify.NewMailer(cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("worker: failed to configure mailer")
		}
		job.Mailer = mailer
	} else {
		logger.Warn().Msg("worker: SMTP not configured, statements are not mailed")
	}

	if *once {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		if err := job.Run(runCtx, cfg.Now()); err != nil {
			logger.Error().Err(err).Msg("worker: monthly run failed")
			os.Exit(1)
		}
		return
	}

	scheduler, err := worker.Schedule(cfg.GenerateSchedule, cfg.Location, job, runTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: invalid schedule")
	}
	scheduler.Start()
	logger.Info().Str("schedule", cfg.GenerateSchedule).Str("timezone", cfg.Timezone).Msg("worker: started")

	<-ctx.Done()
	<-scheduler.Stop().Done()
	logger.Info().Msg("worker: stopped")
}
