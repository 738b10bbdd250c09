package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/tidydo/api/handler"
	"github.com/fastygo/tidydo/internal/bootstrap"
	"github.com/fastygo/tidydo/internal/config"
	"github.com/fastygo/tidydo/internal/infrastructure/monitor"
	"github.com/fastygo/tidydo/internal/middleware"
	"github.com/fastygo/tidydo/internal/router"
	"github.com/fastygo/tidydo/internal/services"
	"github.com/fastygo/tidydo/internal/services/lifecycle"
	"github.com/fastygo/tidydo/pkg/httpcontext"
	"github.com/fastygo/tidydo/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	svc, err := bootstrap.Open(appCtx, cfg, zapLogger, bootstrap.Options{AutoBackup: true})
	if err != nil {
		zapLogger.Fatal("bootstrap failed", zap.Error(err))
	}
	manager.Register("storage", func(ctx context.Context) error {
		return svc.Close()
	})

	mon := monitor.New(svc.Store, cfg.Storage.Backend, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	scheduler, err := services.NewBackupScheduler(svc.Backups, mon, zapLogger, services.SchedulerConfig{
		Schedule: cfg.Backup.Schedule,
		Timeout:  time.Minute,
	})
	if err != nil {
		zapLogger.Fatal("backup scheduler setup failed", zap.Error(err))
	}
	scheduler.Start()
	manager.Register("backup_scheduler", func(ctx context.Context) error {
		scheduler.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Category:   apiHandler.NewCategoryHandler(svc.Categories, svc.Items, ctxAdapter, zapLogger),
		Item:       apiHandler.NewItemHandler(svc.Items, ctxAdapter, zapLogger),
		SimpleItem: apiHandler.NewSimpleItemHandler(svc.SimpleItems, ctxAdapter, zapLogger),
		View:       apiHandler.NewViewHandler(svc.State, ctxAdapter, zapLogger),
		Report:     apiHandler.NewReportHandler(svc.Reports, ctxAdapter, zapLogger),
		Backup:     apiHandler.NewBackupHandler(svc.Backups, ctxAdapter, zapLogger),
		Settings:   apiHandler.NewSettingsHandler(svc.Settings, ctxAdapter, zapLogger),
		Health:     apiHandler.NewHealthHandler(mon, svc.State, ctxAdapter, zapLogger),
	}

	if !cfg.JWT.Enabled() {
		zapLogger.Warn("JWT_SECRET not set, API is unauthenticated")
	}
	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:         r.Handler,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		MaxConnsPerIP:   cfg.HTTP.MaxConn,
		Name:            cfg.AppName,
		CloseOnShutdown: true,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", cfg.Storage.Backend),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
