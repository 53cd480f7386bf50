package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	campaignUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/campaign"
	ledgerUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/ledger"
	"github.com/adsmarket/ledger-engine/internal/domain/usecase/outbox"
	referralUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/referral"
	settingsUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/settings"

	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/handler"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/routes"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/database"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/database/migration"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/logger"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/metrics"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/notifier"
	timeProvider "github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/time"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() {
		_ = appLogger.Flush()
	}()

	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}

	tp := timeProvider.NewRealTimeProvider()

	conn, err := database.NewConnection(dbConfig)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		_ = conn.Close()
	}()

	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	bootCtx := context.Background()
	if err := migration.SeedSettings(bootCtx, conn.DB, appLogger, tp); err != nil {
		appLogger.Error("Failed to seed settings", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	systemActorID, err := migration.EnsureSystemActor(bootCtx, conn.DB, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to resolve system actor", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	ledgerService := ledgerUseCase.NewService(uow, tp, appLogger, ledgerUseCase.SystemActor{UserID: systemActorID})
	referralService := referralUseCase.NewService(uow, tp, appLogger)
	campaignService := campaignUseCase.NewService(uow, tp, appLogger)
	settingsService := settingsUseCase.NewService(uow, tp, appLogger)

	dispatcher := outbox.NewDispatcher(
		uow,
		notifier.NewLogPublisher(appLogger),
		tp,
		appLogger,
		cfg.Engine.OutboxInterval,
		cfg.Engine.OutboxBatchSize,
	)
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	go dispatcher.Run(dispatcherCtx)

	metrics.Init()

	ledgerHandler := handler.NewLedgerHandler(ledgerService, appLogger)
	referralHandler := handler.NewReferralHandler(referralService, appLogger)
	campaignHandler := handler.NewCampaignHandler(campaignService, appLogger)
	settingsHandler := handler.NewSettingsHandler(settingsService, appLogger)

	router := gin.New()

	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, ledgerHandler, referralHandler, campaignHandler, settingsHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("LE_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or LE_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}
	if cfg.Database.Username == "" {
		if cfg.Environment == config.Production && os.Getenv("LE_DB_USERNAME") == "" {
			missingConfigs = append(missingConfigs, "database.username (or LE_DB_USERNAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.username")
		}
	}
	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("LE_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or LE_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingConfigs, ", "))
	}
	return nil
}
