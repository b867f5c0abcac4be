package app

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

	"nihongo-server/internal/config"
	"nihongo-server/internal/database"
	"nihongo-server/internal/handler"
	"nihongo-server/internal/middleware"
	"nihongo-server/internal/repository"
	"nihongo-server/internal/router"
	"nihongo-server/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to MongoDB")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("failed to ensure database indexes: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	vocabularyRepo := repository.NewVocabularyRepository(db)
	tutorialRepo := repository.NewTutorialRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	slog.Info("database ready")

	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, auditService, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	lessonService := service.NewLessonService(lessonRepo, auditService)
	vocabularyService := service.NewVocabularyService(vocabularyRepo, auditService)
	tutorialService := service.NewTutorialService(tutorialRepo, auditService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, db, authMiddleware, router.Handlers{
		Auth:       handler.NewAuthHandler(authService, cfg.Production()),
		User:       handler.NewUserHandler(authService),
		Lesson:     handler.NewLessonHandler(lessonService),
		Vocabulary: handler.NewVocabularyHandler(vocabularyService),
		Tutorial:   handler.NewTutorialHandler(tutorialService),
		Audit:      handler.NewAuditHandler(auditService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := a.db.Close(ctx); err != nil {
		return fmt.Errorf("database disconnect failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
