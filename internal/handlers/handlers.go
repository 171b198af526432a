package handlers

import (
	"PassVault/internal/config"
	"PassVault/internal/middleware"
	"PassVault/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	verifier TokenVerifier,
	passwordService *service.PasswordService,
	groupService *service.GroupService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithCORS)
	r.Use(middleware.WithAuth(config.AuthSecret))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, KindMethodNotAllowed, "method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, KindNotFound, "no such endpoint")
	})

	// Handlers
	authHandler := NewAuthHandler(verifier, logger, config)
	passwordHandler := NewPasswordHandler(passwordService, logger)
	groupHandler := NewGroupHandler(groupService, logger)

	// Auth routes
	r.Post("/api/auth/google", authHandler.LoginGoogle)

	// Vault routes
	r.Route("/api/passwords", func(r chi.Router) {
		r.Get("/", passwordHandler.List)
		r.Post("/", passwordHandler.Create)
		r.Put("/{id}", passwordHandler.Update)
		r.Patch("/{id}", passwordHandler.Update)
		r.Delete("/{id}", passwordHandler.Delete)
	})
	r.Route("/api/password-groups", func(r chi.Router) {
		r.Get("/", groupHandler.List)
		r.Post("/", groupHandler.Create)
		r.Put("/{id}", groupHandler.Update)
		r.Patch("/{id}", groupHandler.Update)
		r.Delete("/{id}", groupHandler.Delete)
	})

	return &Handler{Router: r}
}
