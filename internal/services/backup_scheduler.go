package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/usecase/app"
)

// ConnectionHealth abstracts the storage monitor.
type ConnectionHealth interface {
	IsOnline() bool
}

// SchedulerConfig controls when the auto-backup check runs.
type SchedulerConfig struct {
	// Schedule is a standard cron spec or descriptor such as "@daily".
	Schedule string
	Timeout  time.Duration
}

// BackupScheduler runs the auto-backup check on a cron schedule. The check itself decides
// whether a file is due, so running it more often than daily is harmless.
type BackupScheduler struct {
	runner  app.AutoBackupRunner
	monitor ConnectionHealth
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     SchedulerConfig
	now     func() time.Time
}

func NewBackupScheduler(runner app.AutoBackupRunner, monitor ConnectionHealth, logger *zap.Logger, cfg SchedulerConfig) (*BackupScheduler, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = "@daily"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bs := &BackupScheduler{
		runner:  runner,
		monitor: monitor,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(),
		now:     time.Now,
	}
	if _, err := bs.cron.AddFunc(cfg.Schedule, bs.tick); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", cfg.Schedule, err)
	}
	return bs, nil
}

// Start launches the cron scheduler.
func (bs *BackupScheduler) Start() {
	if bs == nil || bs.cron == nil {
		return
	}
	bs.cron.Start()
	bs.logger.Info("backup scheduler started", zap.String("schedule", bs.cfg.Schedule))
}

// Stop waits for a running check or for ctx, whichever ends first.
func (bs *BackupScheduler) Stop(ctx context.Context) {
	if bs == nil || bs.cron == nil {
		return
	}
	stopCtx := bs.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bs.logger.Info("backup scheduler stopped")
}

func (bs *BackupScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), bs.cfg.Timeout)
	defer cancel()
	if err := bs.RunOnce(ctx); err != nil {
		bs.logger.Warn("scheduled backup failed", zap.Error(err))
	}
}

// RunOnce performs one auto-backup check. It is skipped while storage is offline.
func (bs *BackupScheduler) RunOnce(ctx context.Context) error {
	if bs.monitor != nil && !bs.monitor.IsOnline() {
		bs.logger.Debug("skipping scheduled backup (storage offline)")
		return nil
	}
	res, err := bs.runner.AutoBackup(ctx, bs.now())
	if err != nil {
		return err
	}
	bs.logger.Debug("scheduled backup check finished",
		zap.Bool("performed", res.Performed),
		zap.String("reason", res.Reason),
	)
	return nil
}
