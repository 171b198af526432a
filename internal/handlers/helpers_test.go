package handlers_test

import (
	"PassVault/internal/auth"
	"PassVault/internal/config"
	"PassVault/internal/crypto"
	"PassVault/internal/handlers"
	"PassVault/internal/model"
	"PassVault/internal/repo"
	"PassVault/internal/service"
	"context"
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const (
	testIssuer   = "https://issuer.test"
	testClientID = "client-test"
	testSecret   = "test-secret"
)

// Minimal mocks
type mockEntryRepo struct{ mock.Mock }

func (m *mockEntryRepo) Create(ctx context.Context, entry *model.PasswordEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockEntryRepo) GetByID(ctx context.Context, ownerID, id string) (*model.PasswordEntry, error) {
	args := m.Called(ctx, ownerID, id)
	if e, ok := args.Get(0).(*model.PasswordEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) Update(ctx context.Context, ownerID, id string, updates map[string]any) (*model.PasswordEntry, error) {
	args := m.Called(ctx, ownerID, id, updates)
	if e, ok := args.Get(0).(*model.PasswordEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *mockEntryRepo) List(ctx context.Context, ownerID string, f repo.EntryFilter) ([]model.PasswordEntry, int64, error) {
	args := m.Called(ctx, ownerID, f)
	if v, ok := args.Get(0).([]model.PasswordEntry); ok {
		return v, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

var _ repo.EntryRepository = (*mockEntryRepo)(nil)

type mockGroupRepo struct{ mock.Mock }

func (m *mockGroupRepo) Create(ctx context.Context, group *model.PasswordGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *mockGroupRepo) GetByID(ctx context.Context, ownerID, id string) (*model.PasswordGroup, error) {
	args := m.Called(ctx, ownerID, id)
	if g, ok := args.Get(0).(*model.PasswordGroup); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGroupRepo) Update(ctx context.Context, ownerID, id string, updates map[string]any) (*model.PasswordGroup, error) {
	args := m.Called(ctx, ownerID, id, updates)
	if g, ok := args.Get(0).(*model.PasswordGroup); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGroupRepo) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *mockGroupRepo) ListWithCounts(ctx context.Context, ownerID string) ([]model.PasswordGroup, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]model.PasswordGroup); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.GroupRepository = (*mockGroupRepo)(nil)

// staticKeySet проверяет подпись identity-токена локальным RSA-ключом.
type staticKeySet struct {
	key *rsa.PublicKey
}

func (s *staticKeySet) VerifySignature(_ context.Context, rawJWT string) ([]byte, error) {
	parts := strings.Split(rawJWT, ".")
	if len(parts) != 3 {
		return nil, errors.New("malformed jwt")
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256([]byte(parts[0] + "." + parts[1]))
	if err := rsa.VerifyPKCS1v15(s.key, stdcrypto.SHA256, digest[:], sig); err != nil {
		return nil, err
	}
	return base64.RawURLEncoding.DecodeString(parts[1])
}

// --- Helpers ---

func testVaultKey(t *testing.T) []byte {
	t.Helper()
	key, err := crypto.DeriveKey("handlers-test")
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func newTestRouter(t *testing.T, er repo.EntryRepository, gr repo.GroupRepository, idpKey *rsa.PrivateKey) http.Handler {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, GoogleClientID: testClientID, GoogleIssuer: testIssuer}
	logger := zap.NewNop().Sugar()

	verifier := auth.NewVerifierWithKeySet(testIssuer, testClientID, &staticKeySet{key: &idpKey.PublicKey})
	passwordSvc := service.NewPasswordService(er, testVaultKey(t))
	groupSvc := service.NewGroupService(gr)

	h := handlers.NewHandler(verifier, passwordSvc, groupSvc, logger, cfg)
	return h.Router
}

func newIDPKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	return key
}

func mintCredential(t *testing.T, key *rsa.PrivateKey, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":     testIssuer,
		"aud":     testClientID,
		"sub":     "sub-google-1",
		"exp":     exp.Unix(),
		"iat":     time.Now().Unix(),
		"name":    "Alice",
		"email":   "alice@example.com",
		"picture": "https://example.com/a.png",
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign credential: %v", err)
	}
	return raw
}

func addAuthHeader(t *testing.T, req *http.Request, subjectID string) {
	t.Helper()
	s := &auth.Session{
		SubjectID: subjectID,
		LoginType: "google",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	token, err := s.Token(testSecret)
	if err != nil {
		t.Fatalf("failed to sign session: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func addExpiredAuthHeader(t *testing.T, req *http.Request) {
	t.Helper()
	s := &auth.Session{
		SubjectID: "sub-late",
		LoginType: "google",
		IssuedAt:  time.Now().Add(-25 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	token, err := s.Token(testSecret)
	if err != nil {
		t.Fatalf("failed to sign session: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
