package middleware

import (
	"PassVault/internal/auth"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const sessionKey contextKey = "session"

// WithAuth разбирает bearer-токен сессии и кладёт сессию в контекст запроса.
// Отсутствующий, просроченный или невалидный токен оставляет запрос
// анонимным — решение о 401 принимает хендлер.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
				if s, err := auth.ParseSessionToken(token, secret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey, s))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext возвращает сессию запроса, если она установлена.
func GetSessionFromContext(ctx context.Context) (*auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*auth.Session)
	return s, ok
}
