package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL — фиксированное время жизни внутренней сессии.
// Оно не зависит от срока действия внешнего identity-токена.
const SessionTTL = 24 * time.Hour

var ErrSessionInvalid = errors.New("session token is invalid")

// Session — внутренняя сессия, выданная после проверки identity-токена.
// Сессия неизменяема: повторный вход выдаёт новую сессию, а не правит старую.
type Session struct {
	SubjectID string    `json:"subjectId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Picture   string    `json:"picture"`
	LoginType string    `json:"loginType"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewSession строит сессию из проверенных claims.
func NewSession(c *Claims, loginType string) *Session {
	now := time.Now()
	return &Session{
		SubjectID: c.SubjectID,
		Name:      c.Name,
		Email:     c.Email,
		Picture:   c.Picture,
		LoginType: loginType,
		IssuedAt:  now,
		ExpiresAt: now.Add(SessionTTL),
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Picture   string `json:"picture,omitempty"`
	LoginType string `json:"login_type,omitempty"`
}

// Token кодирует сессию в подписанный HS256 bearer-токен.
func (s *Session) Token(secret string) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.SubjectID,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		Name:      s.Name,
		Email:     s.Email,
		Picture:   s.Picture,
		LoginType: s.LoginType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken разбирает bearer-токен сессии. Просроченный или
// подписанный чужим секретом токен отклоняется.
func ParseSessionToken(token, secret string) (*Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrSessionInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrSessionInvalid
	}
	if claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrSessionInvalid
	}
	return &Session{
		SubjectID: claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		Picture:   claims.Picture,
		LoginType: claims.LoginType,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
