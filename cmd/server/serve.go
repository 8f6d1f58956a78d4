package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/handler"
	"github.com/AbrarBb/findie/internal/middleware"
	"github.com/AbrarBb/findie/internal/migration"
	"github.com/AbrarBb/findie/internal/repository"
	"github.com/AbrarBb/findie/internal/service"
	"github.com/AbrarBb/findie/pkg/logger"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var (
		functions string
		port      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the backend functions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("functions") {
				cfg.Functions = config.ParseFunctions(functions)
			}
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServer(cfg)
		},
	}

	cmd.Flags().StringVar(&functions, "functions", "", "Comma separated functions to mount (default: all)")
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides HTTP_PORT)")

	return cmd
}

func runServer(cfg *config.Config) error {
	ctx := context.Background()

	dbPool, err := initDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if cfg.MigrateOnStart {
		logger.Info("Running database migrations...")
		if err := migration.AutoMigrate(cfg.DBUrl); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Migrations completed successfully")
	}

	redisClient, err := initRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	deps := initDependencies(cfg, dbPool, redisClient)
	router := setupRouter(cfg, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Functions server starting",
			zap.String("port", cfg.Port),
			zap.Strings("functions", enabledFunctions(cfg)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
	return nil
}

type Dependencies struct {
	ExpiryHandler   *handler.ExpiryHandler
	OCRHandler      *handler.OCRHandler
	IdentityHandler *handler.IdentityHandler
	HealthHandler   *handler.HealthHandler
	Limiter         middleware.Limiter
}

func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client) *Dependencies {
	store := repository.NewStore(dbPool)

	expiryService := service.NewExpiryService(store.Posts(), service.SystemClock())
	ocrService := service.NewOCRService(service.NewMockExtractor(cfg.OCRSimulatedDelay))
	identityService := service.NewIdentityService(store)

	return &Dependencies{
		ExpiryHandler:   handler.NewExpiryHandler(expiryService),
		OCRHandler:      handler.NewOCRHandler(ocrService),
		IdentityHandler: handler.NewIdentityHandler(identityService),
		HealthHandler:   handler.NewHealthHandler(serviceName, enabledFunctions(cfg)),
		Limiter:         newLimiter(cfg, redisClient),
	}
}

// newLimiter returns nil when rate limiting is disabled with RATE_LIMIT_RPS=0.
func newLimiter(cfg *config.Config, redisClient *redis.Client) middleware.Limiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	if redisClient != nil {
		limit := int(cfg.RateLimitRPS * cfg.RateLimitWindow.Seconds())
		if limit < 1 {
			limit = 1
		}
		return middleware.NewRedisLimiter(redisClient, limit, cfg.RateLimitWindow)
	}
	return middleware.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

func enabledFunctions(cfg *config.Config) []string {
	var out []string
	for _, fn := range config.AllFunctions {
		if cfg.Enabled(fn) {
			out = append(out, fn)
		}
	}
	return out
}
