package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	httpAdapter "github.com/jdhadshhd/med-point/internal/adapters/primary/http"
	mw "github.com/jdhadshhd/med-point/internal/adapters/primary/http/middleware"
	"github.com/jdhadshhd/med-point/internal/adapters/primary/websocket"
	"github.com/jdhadshhd/med-point/internal/adapters/secondary/postgres"
	"github.com/jdhadshhd/med-point/internal/auth"
	"github.com/jdhadshhd/med-point/internal/config"
	"github.com/jdhadshhd/med-point/internal/core/domain"
	"github.com/jdhadshhd/med-point/internal/core/services"
	"github.com/jdhadshhd/med-point/internal/infrastructure/logging"
	"github.com/jdhadshhd/med-point/internal/infrastructure/metrics"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Run Migrations (optional, controlled by DB_MIGRATIONS_PATH)
	if cfg.Database.MigrationsPath != "" {
		if err := runMigrations(cfg.Database.MigrationsPath, cfg.Database.URL); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied", "path", cfg.Database.MigrationsPath)
	}

	// 4. Initialize Database Pool
	ctx := context.Background()
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database connection established")

	// 5. Initialize Security, Metrics & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	collector := metrics.NewCollector(cfg.App.Name)
	hub := websocket.NewHub(logger, collector)
	go hub.Run()

	// 6. Initialize Rate Limiters
	var generalRateLimiter, authRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})

		authRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.AuthRPS,
			BurstSize:         cfg.RateLimit.AuthBurst,
			CleanupInterval:   time.Minute,
			TTL:               5 * time.Minute,
		})
	}

	// 7. Dependency Injection (Wiring the Hexagon)

	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	userRepo := postgres.NewUserRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	apptRepo := postgres.NewAppointmentRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	flagRepo := postgres.NewCriticalCaseRepository(pool)
	recordRepo := postgres.NewRecordRepository(pool)
	dietPlanRepo := postgres.NewDietPlanRepository(pool)

	// Services (Core)
	authService := services.NewAuthService(userRepo)
	notificationService := services.NewNotificationService(notifRepo, userRepo, hub, collector)
	criticalCaseService := services.NewCriticalCaseService(flagRepo, userRepo, notificationService, collector)
	ticketService := services.NewTicketService(ticketRepo, notificationService, hub, collector)
	appointmentService := services.NewAppointmentService(apptRepo, userRepo, notificationService, hub)
	recordService := services.NewRecordService(recordRepo, criticalCaseService)
	measurementService := services.NewMeasurementService(recordRepo, criticalCaseService)
	dietPlanService := services.NewDietPlanService(dietPlanRepo)

	// Handlers (Primary Adapters)
	authHandler := httpAdapter.NewAuthHandler(authService, tokenManager, errorHandler, logger)
	notificationHandler := httpAdapter.NewNotificationHandler(notificationService, errorHandler, logger)
	appointmentHandler := httpAdapter.NewAppointmentHandler(appointmentService, errorHandler, logger)
	ticketHandler := httpAdapter.NewTicketHandler(ticketService, errorHandler, logger)
	criticalCaseHandler := httpAdapter.NewCriticalCaseHandler(criticalCaseService, errorHandler, logger)
	recordHandler := httpAdapter.NewRecordHandler(recordService, errorHandler, logger)
	measurementHandler := httpAdapter.NewMeasurementHandler(measurementService, errorHandler, logger)
	dietPlanHandler := httpAdapter.NewDietPlanHandler(dietPlanService, errorHandler, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, tokenManager, cfg, logger)
	healthHandler := httpAdapter.NewHealthHandler(pool, cfg.App.Version)

	// 8. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(mw.Metrics(collector))
	r.Use(cors.Handler(corsOptions(cfg)))

	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	healthHandler.RegisterRoutes(r)

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.MetricsHandler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes with stricter rate limiting
		r.Group(func(r chi.Router) {
			if authRateLimiter != nil {
				r.Use(authRateLimiter.Middleware)
			}
			r.Route("/auth", authHandler.RegisterRoutes)
		})

		// WebSocket route (authentication is handled inside the handler)
		r.Get("/ws", wsHandler.ServeHTTP)

		// Protected REST routes
		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))
			r.Route("/notifications", notificationHandler.RegisterRoutes)
			r.Route("/appointments", appointmentHandler.RegisterRoutes)
			r.Route("/tickets", ticketHandler.RegisterRoutes)
			r.Route("/records", recordHandler.RegisterRoutes)
			r.Route("/measurements", measurementHandler.RegisterRoutes)
			r.Route("/diet-plans", dietPlanHandler.RegisterRoutes)

			r.Route("/critical-cases", func(r chi.Router) {
				r.Use(mw.RequireRole(domain.RoleDoctor, domain.RoleAdmin))
				criticalCaseHandler.RegisterRoutes(r)
			})
		})
	})

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	hub.Shutdown()

	logger.Info("server shutdown complete")
}

// corsOptions builds the CORS policy. Development allows any origin,
// production restricts to the configured websocket origins.
func corsOptions(cfg *config.Config) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if cfg.IsDevelopment() {
		opts.AllowedOrigins = []string{"https://*", "http://*"}
		return opts
	}

	origins := make([]string, 0, 2*len(cfg.WebSocket.AllowedOrigins))
	for _, origin := range cfg.WebSocket.AllowedOrigins {
		origins = append(origins, "https://"+origin, "http://"+origin)
	}
	opts.AllowedOrigins = origins
	return opts
}

// runMigrations applies all pending schema migrations from the given path.
func runMigrations(path, databaseURL string) error {
	mig, err := migrate.New("file://"+path, databaseURL)
	if err != nil {
		return err
	}
	defer mig.Close()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
