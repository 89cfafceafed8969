package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ilmkids/internal/catalog"
	"ilmkids/internal/config"
	"ilmkids/internal/database"
	"ilmkids/internal/handlers"
	"ilmkids/internal/logger"
	"ilmkids/internal/repository"
	"ilmkids/internal/repository/memory"
	"ilmkids/internal/security"
	"ilmkids/internal/service"
)

// repositories is the storage backend chosen by configuration
type repositories struct {
	users         service.UserRepository
	relationships service.RelationshipRepository
	progress      service.ProgressRepository
	surahProgress service.SurahProgressRepository
	close         func() error
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	if err := run(cfg, logg); err != nil {
		logg.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	quizCount, _ := cat.CountQuizzes(ctx)
	logg.Info("catalog loaded", zap.String("path", cfg.CatalogPath), zap.Int("quizzes", quizCount))

	repos, err := openRepositories(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.close(); err != nil {
			logg.Warn("failed to close store", zap.Error(err))
		}
	}()

	emailService, err := service.NewEmailService(ctx, cfg.SES.Region, cfg.SES.FromEmail, cfg.SES.FromName, logg)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}
	var notifier service.BadgeNotifier
	if emailService.IsEnabled() {
		notifier = emailService
	}

	// Initialize services
	userService := service.NewUserService(repos.users, logg)
	relationshipService := service.NewRelationshipService(repos.relationships, repos.users, logg)
	progressService := service.NewProgressService(repos.progress, userService, relationshipService, cat, notifier, logg)
	quranService := service.NewQuranService(repos.surahProgress, repos.users, cat, logg)
	dashboardService := service.NewDashboardService(repos.progress, repos.users, relationshipService, cat, logg)

	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	limiter := security.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	proxies, err := security.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return fmt.Errorf("failed to parse trusted proxies: %w", err)
	}
	go limiter.Run(ctx, 5*time.Minute)

	// Setup routes
	mux := http.NewServeMux()
	middleware := handlers.NewMiddleware(tokens, userService, limiter, proxies, logg)
	handlers.RegisterRoutes(mux, middleware, handlers.Handlers{
		Auth:     handlers.NewAuthHandler(userService, tokens, logg),
		Progress: handlers.NewProgressHandler(progressService, relationshipService, logg),
		Family:   handlers.NewFamilyHandler(relationshipService, dashboardService, logg),
		Quran:    handlers.NewQuranHandler(quranService, logg),
		Catalog:  handlers.NewCatalogHandler(cat, logg),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handlers.Logging(logg, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logg.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*repositories, error) {
	if cfg.Database.Type == "memory" {
		logg.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:         store.Users,
			relationships: store.Relationships,
			progress:      store.Progress,
			surahProgress: store.SurahProgress,
			close:         func() error { return nil },
		}, nil
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logg.Info("database connection established", zap.String("type", cfg.Database.Type))

	if err := db.RunMigrations(ctx, cfg.Database.MigrationsPath, logg); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store := repository.NewStore(db, logg)
	return &repositories{
		users:         store.Users,
		relationships: store.Relationships,
		progress:      store.Progress,
		surahProgress: store.SurahProgress,
		close:         db.Close,
	}, nil
}
