package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Ошибки проверки внешнего identity-токена.
var (
	ErrMalformedToken   = errors.New("malformed identity token")
	ErrTokenExpired     = errors.New("identity token expired")
	ErrInvalidSignature = errors.New("identity token signature is invalid")
)

// Claims — проверенный набор утверждений внешнего провайдера.
type Claims struct {
	SubjectID string
	Name      string
	Email     string
	Picture   string
	ExpiresAt time.Time
}

// Verifier проверяет identity-токен: структуру, срок действия и подпись
// ключами провайдера.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier создаёт Verifier с удалённым набором ключей провайдера
// (JWKS, go-oidc кеширует ключи и сам обновляет их при ротации).
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return &Verifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

// NewVerifierWithKeySet создаёт Verifier с заданным набором ключей
// (в тестах — локальный ключ без сети).
func NewVerifierWithKeySet(issuer, clientID string, keySet oidc.KeySet) *Verifier {
	return &Verifier{verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{ClientID: clientID})}
}

type rawClaims struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Exp     int64  `json:"exp"`
}

// Verify разбирает и проверяет identity-токен. Claims берутся только из
// токена с проверенной подписью, а не из предварительного разбора.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	// структура: три сегмента, payload — валидный JSON
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformedToken
	}
	var rc rawClaims
	if err := json.Unmarshal(payload, &rc); err != nil {
		return nil, ErrMalformedToken
	}

	// срок действия проверяем до похода за ключами
	if rc.Exp > 0 && time.Unix(rc.Exp, 0).Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidSignature
	}

	var verified rawClaims
	if err := idToken.Claims(&verified); err != nil {
		return nil, ErrMalformedToken
	}
	return &Claims{
		SubjectID: idToken.Subject,
		Name:      verified.Name,
		Email:     verified.Email,
		Picture:   verified.Picture,
		ExpiresAt: idToken.Expiry,
	}, nil
}
