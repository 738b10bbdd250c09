// Package bootstrap opens the record store and wires the use cases shared by the HTTP
// server and the command-line client.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/internal/config"
	"github.com/fastygo/tidydo/internal/storage"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/repository/records"
	"github.com/fastygo/tidydo/usecase/app"
	backupUC "github.com/fastygo/tidydo/usecase/backup"
	categoryUC "github.com/fastygo/tidydo/usecase/category"
	itemUC "github.com/fastygo/tidydo/usecase/item"
	reportUC "github.com/fastygo/tidydo/usecase/report"
	settingsUC "github.com/fastygo/tidydo/usecase/settings"
	simpleUC "github.com/fastygo/tidydo/usecase/simpleitem"
)

// Services holds the wired application.
type Services struct {
	Store       repository.KVStore
	State       *app.Container
	Settings    *settingsUC.UseCase
	Categories  *categoryUC.UseCase
	Items       *itemUC.UseCase
	SimpleItems *simpleUC.UseCase
	Reports     *reportUC.UseCase
	Backups     *backupUC.UseCase
}

// Options tunes the wiring for the caller.
type Options struct {
	// AutoBackup schedules the post-bootstrap backup check. The CLI leaves it off.
	AutoBackup bool
}

// Open connects storage, wires every use case to the state container and bootstraps it.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	svc := Wire(store, cfg, logger, opts)
	if err := svc.State.Initialize(ctx, false); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("initialize state: %w", err)
	}
	return svc, nil
}

// Wire builds the use cases on top of an already opened store.
func Wire(store repository.KVStore, cfg *config.Config, logger *zap.Logger, opts Options) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	categoryRepo := records.NewCategoryRepository(store)
	itemRepo := records.NewItemRepository(store)
	simpleRepo := records.NewSimpleItemRepository(store)
	configDocs := records.NewDocumentRepository(store, domain.KeyAppConfig)

	settings := settingsUC.New(configDocs, nil, logger.Named("settings"))
	backups := backupUC.New(store, settings, nil, logger.Named("backup"))
	backups.SetFallbackDir(cfg.Backup.FallbackDir)

	delay := cfg.Backup.StartupDelay
	var runner app.AutoBackupRunner
	if opts.AutoBackup {
		runner = backups
	} else {
		delay = -1
	}

	state := app.New(app.Deps{
		Categories:  categoryRepo,
		Items:       itemRepo,
		SimpleItems: simpleRepo,
		Config:      settings,
		Backups:     runner,
		BackupDelay: delay,
		Logger:      logger.Named("app"),
	})
	settings.SetReloader(state)
	backups.SetReloader(state)

	return &Services{
		Store:       store,
		State:       state,
		Settings:    settings,
		Categories:  categoryUC.New(categoryRepo, itemRepo, simpleRepo, state, logger.Named("category")),
		Items:       itemUC.New(itemRepo, categoryRepo, settings, state, logger.Named("item")),
		SimpleItems: simpleUC.New(simpleRepo, categoryRepo, state, logger.Named("simpleitem")),
		Reports:     reportUC.New(categoryRepo, itemRepo, simpleRepo, logger.Named("report")),
		Backups:     backups,
	}
}

// Close stops background work and releases the store.
func (s *Services) Close() error {
	if s == nil {
		return nil
	}
	if s.State != nil {
		s.State.Close()
	}
	if s.Store != nil {
		return s.Store.Close()
	}
	return nil
}
