package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escapade/api/internal/config"
	"github.com/escapade/api/internal/database"
	"github.com/escapade/api/internal/handler"
	"github.com/escapade/api/internal/middleware"
	"github.com/escapade/api/internal/repository"
	"github.com/escapade/api/internal/service"
	"github.com/escapade/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
		Signer:   jwtService,
	})

	catalogService := service.NewCatalogService(service.CatalogServiceConfig{
		ActivityRepo: activityRepo,
		UserRepo:     userRepo,
	})

	favoriteService := service.NewFavoriteService(service.FavoriteServiceConfig{
		FavoriteRepo: favoriteRepo,
		ActivityRepo: activityRepo,
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	activityHandler := handler.NewActivityHandler(catalogService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	// Rate limiters: a global one plus tight buckets on credential endpoints
	globalLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.GlobalPerMin,
		Window: time.Minute,
	})
	defer globalLimiter.Stop()

	loginLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.LoginPerMin,
		Window: time.Minute,
		Burst:  1,
	})
	defer loginLimiter.Stop()

	registerLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.RegisterPerMin,
		Window: time.Minute,
		Burst:  1,
	})
	defer registerLimiter.Stop()

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public, throttled)
	mux.Handle("POST /v1/auth/register", middleware.RateLimit(registerLimiter)(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /v1/auth/login", middleware.RateLimit(loginLimiter)(http.HandlerFunc(authHandler.Login)))

	authMiddleware := middleware.Auth(jwtService)

	// Auth endpoints (protected)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Activity catalog endpoints (public reads)
	mux.HandleFunc("GET /v1/activities", activityHandler.List)
	mux.HandleFunc("GET /v1/activities/latest", activityHandler.Latest)
	mux.HandleFunc("GET /v1/activities/cities", activityHandler.Cities)
	mux.HandleFunc("GET /v1/activities/city/{city}", activityHandler.ByCity)
	mux.HandleFunc("GET /v1/activities/{activityId}", activityHandler.Get)
	mux.Handle("POST /v1/activities", authMiddleware(http.HandlerFunc(activityHandler.Create)))
	mux.Handle("GET /v1/profile/activities", authMiddleware(http.HandlerFunc(activityHandler.Mine)))

	// Favorite endpoints (all protected)
	mux.Handle("GET /v1/favorites", authMiddleware(http.HandlerFunc(favoriteHandler.List)))
	mux.Handle("POST /v1/favorites", authMiddleware(http.HandlerFunc(favoriteHandler.Add)))
	mux.Handle("DELETE /v1/favorites/{activityId}", authMiddleware(http.HandlerFunc(favoriteHandler.Remove)))
	mux.Handle("PUT /v1/favorites/order", authMiddleware(http.HandlerFunc(favoriteHandler.Reorder)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(globalLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
