package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/haldorr/pennywise-backend/internal/config"
	"github.com/haldorr/pennywise-backend/internal/handler"
	"github.com/haldorr/pennywise-backend/internal/middleware"
	"github.com/haldorr/pennywise-backend/internal/repository/postgres"
	"github.com/haldorr/pennywise-backend/internal/repository/storage"
	"github.com/haldorr/pennywise-backend/internal/store"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	repos := store.Repositories{
		Accounts:         postgres.NewAccountRepository(pool),
		Categories:       postgres.NewCategoryRepository(pool),
		Transactions:     postgres.NewTransactionRepository(pool),
		SpecialDates:     postgres.NewSpecialDateRepository(pool),
		SavingsGoals:     postgres.NewSavingsGoalRepository(pool),
		SavingsMovements: postgres.NewSavingsMovementRepository(pool),
		WeeklyGoals:      postgres.NewWeeklyGoalRepository(pool),
		MonthlyNotes:     postgres.NewMonthlyNoteRepository(pool),
	}

	// Per-user projection stores
	stores := store.NewManager(repos, log.Logger, cfg.StoreIdleTTL)
	defer stores.Stop()

	// Export archive (S3 when credentials or an endpoint are configured)
	var archive storage.ArchiveRepository
	if cfg.S3.AccessKeyID != "" || cfg.S3.Endpoint != "" {
		s3Archive, err := storage.NewS3ArchiveRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 archive")
		}
		archive = s3Archive
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Export archive enabled")
	} else {
		archive = storage.NewNoopArchiveRepository()
		log.Info().Msg("Export archive disabled")
	}

	// Initialize auth middleware
	userProvider := &userProviderAdapter{users: userRepo}
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, userProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Per-user rate limiting
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Accounts:     handler.NewAccountHandler(stores),
		Categories:   handler.NewCategoryHandler(stores),
		Transactions: handler.NewTransactionHandler(stores),
		SpecialDates: handler.NewSpecialDateHandler(stores),
		Savings:      handler.NewSavingsHandler(stores),
		Budgets:      handler.NewBudgetHandler(stores),
		Reports:      handler.NewReportHandler(stores),
		Porting:      handler.NewPortingHandler(stores, archive, log.Logger),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API documentation
	handler.RegisterSwagger(e)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// userProviderAdapter adapts the user repository to middleware.UserProvider
type userProviderAdapter struct {
	users *postgres.UserRepository
}

// ResolveUser implements middleware.UserProvider
func (a *userProviderAdapter) ResolveUser(authID, email string) (uuid.UUID, error) {
	user, err := a.users.CreateOrGetByAuthID(authID, email)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
