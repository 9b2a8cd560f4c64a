package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	auditapp "github.com/bookkeep/backend/internal/application/audit"
	ledgerapp "github.com/bookkeep/backend/internal/application/ledger"
	recapp "github.com/bookkeep/backend/internal/application/reconciliation"
	reportapp "github.com/bookkeep/backend/internal/application/report"
	"github.com/bookkeep/backend/internal/infrastructure/config"
	"github.com/bookkeep/backend/internal/infrastructure/locking"
	"github.com/bookkeep/backend/internal/infrastructure/logger"
	"github.com/bookkeep/backend/internal/infrastructure/persistence"
	"github.com/bookkeep/backend/internal/interfaces/http/handler"
	"github.com/bookkeep/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	var locker locking.Locker = locking.NewLocalLocker()
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		locker = locking.NewRedisLocker(client, cfg.Audit.LockTTL)
		log.Info("using redis distributed locking", zap.String("addr", cfg.Redis.Addr))
	}

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	entryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	recRepo := persistence.NewGormReconciliationRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	recorder := auditapp.NewRecorder(auditRepo, locker, cfg.Audit.MaxAppendRetries)
	auditQueries := auditapp.NewQueryService(auditRepo)
	ledgerQueries := ledgerapp.NewQueryService(accountRepo, entryRepo, bankAccountRepo)
	accountService := ledgerapp.NewAccountService(accountRepo, bankAccountRepo, recorder, txManager)
	journalService := ledgerapp.NewJournalService(entryRepo, accountRepo, recorder, txManager)
	recService := recapp.NewService(recRepo, entryRepo, accountRepo, bankAccountRepo, recorder, txManager)
	reportService := reportapp.NewService(accountRepo, entryRepo)

	engine := router.New(log, router.Handlers{
		System:         handler.NewSystemHandler(db),
		Account:        handler.NewAccountHandler(accountService, ledgerQueries),
		Journal:        handler.NewJournalHandler(journalService, ledgerQueries),
		Reconciliation: handler.NewReconciliationHandler(recService, ledgerQueries),
		Report:         handler.NewReportHandler(reportService),
		Audit:          handler.NewAuditHandler(auditQueries),
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
