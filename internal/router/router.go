package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nihongo-server/internal/config"
	"nihongo-server/internal/handler"
	"nihongo-server/internal/middleware"
	"nihongo-server/internal/model"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Lesson     *handler.LessonHandler
	Vocabulary *handler.VocabularyHandler
	Tutorial   *handler.TutorialHandler
	Audit      *handler.AuditHandler
}

func New(cfg *config.Config, db HealthChecker, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Health(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	requireUser := authMiddleware.RequireRoles(model.RoleUser, model.RoleAdmin)
	requireAdmin := authMiddleware.RequireRoles(model.RoleAdmin)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/register", h.Auth.Register)
		api.Post("/login", h.Auth.Login)
		api.Post("/logout", h.Auth.Logout)
		api.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)

		api.With(authMiddleware.RequireAuth, requireUser).Get("/lessons", h.Lesson.List)
		api.With(authMiddleware.RequireAuth, requireAdmin).Post("/lessons", h.Lesson.Create)
		api.With(authMiddleware.RequireAuth, requireAdmin).Put("/lessons/{lessonID}", h.Lesson.Update)
		api.With(authMiddleware.RequireAuth, requireAdmin).Delete("/lessons/{lessonID}", h.Lesson.Delete)
		api.With(authMiddleware.RequireAuth, requireUser).Get("/lessons/{lessonNumber}/vocabularies", h.Vocabulary.ListByLesson)

		api.With(authMiddleware.RequireAuth, requireAdmin).Get("/vocabularies", h.Vocabulary.ListAll)
		api.With(authMiddleware.RequireAuth, requireAdmin).Post("/vocabularies", h.Vocabulary.Create)
		api.With(authMiddleware.RequireAuth, requireAdmin).Put("/vocabularies/{vocabularyID}", h.Vocabulary.Update)
		api.With(authMiddleware.RequireAuth, requireAdmin).Delete("/vocabularies/{vocabularyID}", h.Vocabulary.Delete)

		api.With(authMiddleware.RequireAuth, requireUser).Get("/tutorials", h.Tutorial.List)
		api.With(authMiddleware.RequireAuth, requireAdmin).Post("/tutorials", h.Tutorial.Create)
		api.With(authMiddleware.RequireAuth, requireAdmin).Delete("/tutorials/{tutorialID}", h.Tutorial.Delete)

		api.With(authMiddleware.RequireAuth, requireAdmin).Get("/users", h.User.List)
		api.With(authMiddleware.RequireAuth, requireAdmin).Patch("/admin/users/{userID}/role", h.User.UpdateRole)
		api.With(authMiddleware.RequireAuth, requireAdmin).Get("/admin/audit", h.Audit.List)
	})

	return r
}
