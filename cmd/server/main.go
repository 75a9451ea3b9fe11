package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appsync "github.com/novizna/ninjasync/internal/application/sync"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/config"
	"github.com/novizna/ninjasync/internal/infrastructure/invoiceninja"
	"github.com/novizna/ninjasync/internal/infrastructure/lock"
	"github.com/novizna/ninjasync/internal/infrastructure/logger"
	"github.com/novizna/ninjasync/internal/infrastructure/notification"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence"
	"github.com/novizna/ninjasync/internal/infrastructure/scheduler"
	"github.com/novizna/ninjasync/internal/interfaces/http/handler"
	"github.com/novizna/ninjasync/internal/interfaces/http/middleware"
	"github.com/novizna/ninjasync/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting sync bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories and local document stores
	mappingRepo := persistence.NewGormCompanyMappingRepository(db.DB)
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)
	logRepo := persistence.NewGormSyncLogRepository(db.DB)
	stores := appsync.Stores{
		Customers:  persistence.NewGormCustomerStore(db.DB),
		Addresses:  persistence.NewGormAddressStore(db.DB),
		Contacts:   persistence.NewGormContactStore(db.DB),
		Items:      persistence.NewGormItemStore(db.DB),
		Invoices:   persistence.NewGormInvoiceStore(db.DB),
		Quotations: persistence.NewGormQuotationStore(db.DB),
		Payments:   persistence.NewGormPaymentStore(db.DB),
	}

	// Document locking via Redis. Sync works without it; the lock narrows
	// the duplicate-create window on concurrent pushes.
	var locker syncdomain.DocumentLocker
	if cfg.Sync.LockEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unreachable, document locking disabled", zap.Error(err))
		} else {
			locker = lock.NewRedisDocumentLocker(redisClient, cfg.Sync.LockTTL)
		}
		cancel()
	}

	// Invoice Ninja clients
	factory := invoiceninja.NewFactory(credentialRepo, log)
	var masterCfg *invoiceninja.Config
	if cfg.Ninja.Configured() {
		masterCfg = &invoiceninja.Config{
			BaseURL:            cfg.Ninja.BaseURL,
			APIToken:           cfg.Ninja.MasterToken,
			TimeoutSeconds:     cfg.Ninja.TimeoutSeconds,
			PingTimeoutSeconds: cfg.Ninja.PingTimeoutSeconds,
		}
	}

	// Failure alerts and reports
	var notifier syncdomain.Notifier
	if cfg.Notification.Enabled {
		notifier, err = notification.NewEmailNotifier(
			context.Background(),
			cfg.Notification.Region,
			cfg.Notification.AccessKeyID,
			cfg.Notification.SecretAccessKey,
			cfg.Notification.Sender,
			cfg.Notification.Recipients,
			log,
		)
		if err != nil {
			log.Warn("Email notifier unavailable", zap.Error(err))
			notifier = nil
		}
	}

	// Application services
	companyMapper := appsync.NewCompanyMapper(mappingRepo, log)
	fieldMapper := appsync.NewFieldMapper(appsync.DefaultLookups())
	itemCodes := appsync.NewItemCodeResolver(stores.Items, fieldMapper)
	orchestrator := appsync.NewOrchestrator(
		companyMapper, fieldMapper, itemCodes, factory,
		&cfg.Sync, stores, logRepo, locker, notifier, log,
	)
	discoveryService := appsync.NewDiscoveryService(credentialRepo, factory, masterCfg, log)
	statusService := appsync.NewStatusService(&cfg.Sync, mappingRepo, credentialRepo, logRepo, cfg.Webhook.Secret != "")

	// Background pull scheduler and maintenance loops
	pullExecutor := scheduler.NewPullExecutor(orchestrator, log)
	pullScheduler, err := scheduler.NewPullScheduler(scheduler.PullSchedulerConfig{
		MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
		JobTimeout:        cfg.Scheduler.JobTimeout,
		QueueSize:         cfg.Scheduler.QueueSize,
	}, pullExecutor, log)
	if err != nil {
		log.Fatal("Failed to create pull scheduler", zap.Error(err))
	}

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	if err := pullScheduler.Start(schedulerCtx); err != nil {
		log.Fatal("Failed to start pull scheduler", zap.Error(err))
	}

	var maintenance *scheduler.MaintenanceTrigger
	if cfg.Scheduler.Enabled {
		maintenance, err = scheduler.NewMaintenanceTrigger(scheduler.MaintenanceConfig{
			PullInterval:    cfg.Scheduler.PullInterval,
			CleanupInterval: cfg.Scheduler.CleanupInterval,
			LogRetention:    time.Duration(cfg.Scheduler.LogRetentionDays) * 24 * time.Hour,
			ReportInterval:  cfg.Scheduler.ReportInterval,
			ReportEnabled:   cfg.Scheduler.ReportEnabled,
		}, pullScheduler, logRepo, notifier, log)
		if err != nil {
			log.Fatal("Failed to create maintenance trigger", zap.Error(err))
		}
		if err := maintenance.Start(schedulerCtx); err != nil {
			log.Fatal("Failed to start maintenance trigger", zap.Error(err))
		}
	}

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(cfg.App.Name, version))
	r.Register(handler.NewMappingHandler(mappingRepo, companyMapper, log))
	r.Register(handler.NewCompanyHandler(credentialRepo, discoveryService, log))
	r.Register(handler.NewSyncHandler(orchestrator, pullScheduler, statusService, log))
	r.Register(handler.NewWebhookHandler(orchestrator, companyMapper, cfg.Webhook.Secret, log))
	r.Register(handler.NewFetchHandler(orchestrator, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if maintenance != nil {
		if err := maintenance.Stop(shutdownCtx); err != nil {
			log.Error("Maintenance trigger shutdown failed", zap.Error(err))
		}
	}
	if err := pullScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Pull scheduler shutdown failed", zap.Error(err))
	}
	stopScheduler()

	log.Info("Shutdown complete")
}
