package handlers

import (
	"PassVault/internal/auth"
	"PassVault/internal/config"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// TokenVerifier — контракт проверки identity-токена (реализация — auth.Verifier).
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.Claims, error)
}

// AuthHandler обрабатывает вход через внешнего identity-провайдера.
type AuthHandler struct {
	Verifier TokenVerifier
	Logger   *zap.SugaredLogger
	Config   *config.Config
}

// NewAuthHandler создаёт хендлер аутентификации.
func NewAuthHandler(verifier TokenVerifier, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Verifier: verifier, Logger: logger, Config: cfg}
}

type loginRequest struct {
	Credential string `json:"credential"`
}

type loginResponse struct {
	Success bool          `json:"success"`
	User    *auth.Session `json:"user"`
	Token   string        `json:"token"`
	Message string        `json:"message"`
}

// LoginGoogle проверяет identity-токен Google и выдаёт внутреннюю сессию
// со своим сроком жизни.
func (h *AuthHandler) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		writeError(w, http.StatusBadRequest, KindBadRequest, "credential is required")
		return
	}

	claims, err := h.Verifier.Verify(r.Context(), req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMalformedToken):
			writeError(w, http.StatusUnauthorized, KindMalformedToken, "credential is not a valid identity token")
		case errors.Is(err, auth.ErrTokenExpired):
			writeError(w, http.StatusUnauthorized, KindTokenExpired, "identity token has expired")
		case errors.Is(err, auth.ErrInvalidSignature):
			writeError(w, http.StatusUnauthorized, KindInvalidSignature, "identity token signature could not be verified")
		default:
			h.Logger.Errorw("LoginGoogle: verifier error", "error", err)
			writeError(w, http.StatusInternalServerError, KindInternal, "internal error")
		}
		return
	}

	session := auth.NewSession(claims, "google")
	token, err := session.Token(h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("LoginGoogle: failed to sign session", "error", err)
		writeError(w, http.StatusInternalServerError, KindInternal, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    session,
		Token:   token,
		Message: "login successful",
	})
}
