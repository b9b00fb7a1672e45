package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servifix-backend/internal/config"
	"servifix-backend/internal/db"
	"servifix-backend/internal/domain"
	"servifix-backend/internal/gcal"
	"servifix-backend/internal/handler"
	"servifix-backend/internal/repository"
	"servifix-backend/internal/scheduler"
	"servifix-backend/internal/server"
	"servifix-backend/internal/service"
	"servifix-backend/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New()

	// Postgres is optional. With it the server restores the last snapshot
	// at boot, saves one periodically and mirrors every history entry to
	// the audit log. Without it state lives only in memory.
	var pg *db.Postgres
	var snapshots scheduler.Snapshotter
	if cfg.DatabaseURL != "" {
		pg, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect database", "err", err)
			os.Exit(1)
		}
		defer pg.Close()

		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure schema", "err", err)
			os.Exit(1)
		}

		snapshotRepo := repository.SnapshotRepository{DB: pg}
		auditRepo := repository.AuditLogRepository{DB: pg}

		if data, err := snapshotRepo.LoadLatest(ctx); err == nil {
			if err := st.Restore(data); err != nil {
				logger.Error("failed to restore snapshot", "err", err)
				os.Exit(1)
			}
			logger.Info("state restored from snapshot", "bytes", len(data))
		} else if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("snapshot load failed, starting empty", "err", err)
		}

		st.SetAuditSink(func(entity, entityID string, entry domain.ActionLog) {
			go func() {
				auditCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := auditRepo.Create(auditCtx, entity, entityID, entry); err != nil {
					logger.Warn("audit log write failed", "entity", entity, "entity_id", entityID, "err", err)
				}
			}()
		})

		snapshots = scheduler.Snapshotter{Store: st, Repo: snapshotRepo, Logger: logger, Interval: cfg.SnapshotEvery}
		go snapshots.Run(ctx)
	}

	if cfg.Env == "development" {
		st.SeedDemo()
	}

	cal, err := gcal.New(ctx, cfg.GoogleCredFile, logger)
	if err != nil {
		logger.Error("failed to init google calendar client", "err", err)
		os.Exit(1)
	}
	if cal.Enabled() {
		logger.Info("google calendar sync enabled")
	}

	authSvc := service.AuthService{Config: cfg, Store: st, Logger: logger}
	syncSvc := service.SyncService{Cal: cal, Store: st, Logger: logger, Timeout: cfg.SyncTimeout}

	healthHandler := handler.HealthHandler{}
	if pg != nil {
		healthHandler.DB = pg
	}
	authHandler := handler.AuthHandler{Auth: authSvc}
	orderHandler := handler.OrderHandler{Store: st, Sync: syncSvc}
	customerHandler := handler.CustomerHandler{Store: st}
	calendarHandler := handler.CalendarHandler{Store: st, Cal: cal}
	staffHandler := handler.StaffHandler{Store: st, Auth: authSvc}
	invoiceHandler := handler.InvoiceHandler{Store: st}
	quoteHandler := handler.QuoteHandler{Store: st}
	maintenanceHandler := handler.MaintenanceHandler{Store: st}
	equipmentHandler := handler.EquipmentHandler{Store: st}
	productHandler := handler.ProductHandler{Store: st}
	accountHandler := handler.AccountHandler{Store: st}

	router := server.NewRouter(cfg, logger,
		healthHandler, authHandler, orderHandler, customerHandler,
		calendarHandler, staffHandler, invoiceHandler, quoteHandler,
		maintenanceHandler, equipmentHandler, productHandler, accountHandler)

	sweeper := scheduler.Maintenance{Store: st, Logger: logger, Interval: cfg.SweepInterval}
	go sweeper.Run(ctx)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}

	// Final snapshot so a clean shutdown loses nothing.
	if pg != nil {
		snapshots.SaveNow(context.Background())
	}
}
