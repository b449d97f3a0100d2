package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/cmd/docs"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/handlers"
	"github.com/SscSPs/barbershop_cashdrawer/internal/middleware"
	"github.com/SscSPs/barbershop_cashdrawer/internal/platform/config"
	"github.com/SscSPs/barbershop_cashdrawer/internal/platform/metrics"
	"github.com/SscSPs/barbershop_cashdrawer/internal/repositories/database/pgsql"
	"github.com/SscSPs/barbershop_cashdrawer/internal/repositories/memory"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils"
	"github.com/SscSPs/barbershop_cashdrawer/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limiterMemory "github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/sync/errgroup"
)

// @title Barbershop Cash Drawer API
// @version 1.0
// @description Per-employee cash sessions, income and expense entries, and end-of-shift reconciliation.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	var registry *metrics.Registry
	var ledgerMetrics portssvc.LedgerMetrics
	if cfg.MetricsEnabled {
		registry = metrics.NewRegistry()
		ledgerMetrics = registry
	}
	serviceContainer := services.NewServiceContainer(cfg, repos, ledgerMetrics)

	if cfg.SeedDemoEmployees && !cfg.IsProduction {
		seedDemoEmployees(ctx, cfg, serviceContainer.Employee, logger)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimiter := limiter.New(limiterMemory.NewStore(), rate)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if registry != nil {
		r.Use(middleware.Metrics(registry))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var metricsHandler http.Handler
	if registry != nil {
		metricsHandler = registry.Handler()
	}
	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter, metricsHandler)
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		closeStorage()
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// newRepositories builds the configured storage backend. The returned func releases it.
func newRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// seedDemoEmployees registers an administrator and two cashiers and logs a token for each.
func seedDemoEmployees(ctx context.Context, cfg *config.Config, directory portssvc.EmployeeDirectorySvc, logger *slog.Logger) {
	system := domain.Actor{EmployeeID: "system", Role: domain.RoleAdmin}
	demo := []dto.RegisterEmployeeRequest{
		{EmployeeID: "emp-admin", Name: "Shop Owner", Role: domain.RoleAdmin},
		{EmployeeID: "emp-ana", Name: "Ana", Role: domain.RoleCashier},
		{EmployeeID: "emp-luis", Name: "Luis", Role: domain.RoleCashier},
	}
	for _, req := range demo {
		if _, err := directory.RegisterEmployee(ctx, req, system); err != nil {
			logger.Error("Failed to seed employee", slog.String("employee_id", req.EmployeeID), slog.String("error", err.Error()))
			continue
		}
		token, err := utils.GenerateJWT(req.EmployeeID, string(req.Role), cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
		if err != nil {
			logger.Error("Failed to sign demo token", slog.String("employee_id", req.EmployeeID), slog.String("error", err.Error()))
			continue
		}
		logger.Info("Demo employee ready", slog.String("employee_id", req.EmployeeID), slog.String("role", string(req.Role)), slog.String("token", token))
	}
}
