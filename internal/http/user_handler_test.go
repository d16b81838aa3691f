package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"career-coach/internal/domain"
	"career-coach/internal/service"
)

type mockUserRepo struct {
	usersByID       map[string]domain.User
	usersByUsername map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:       make(map[string]domain.User),
		usersByUsername: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	m.usersByUsername[strings.ToLower(user.Username)] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	id, ok := m.usersByUsername[strings.ToLower(username)]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

type mockLimiter struct {
	allow bool
}

func (m *mockLimiter) Allow(_ string) bool {
	return m.allow
}

func newTestJWT() *service.JWTService {
	return service.NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, service.NewMemoryRefreshTokenStore())
}

func setupUserRouter(userSvc *service.UserService, jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(zap.NewNop(), userSvc, jwtSvc)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	r.POST("/auth/logout", h.Logout)
	return r
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type authResponse struct {
	User   domain.User       `json:"user"`
	Tokens service.TokenPair `json:"tokens"`
}

func decodeAuth(t *testing.T, rec *httptest.ResponseRecorder) authResponse {
	t.Helper()
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

var janeRegistration = map[string]string{
	"username": "Jane.Doe",
	"name":     "Jane Doe",
	"password": "secret1",
	"email":    "jane@example.com",
}

func TestUserHandlerRegister_Success(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	r := setupUserRouter(svc, newTestJWT())

	rec := performRequest(r, http.MethodPost, "/auth/register", janeRegistration)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeAuth(t, rec)
	if resp.User.Username != "jane.doe" {
		t.Fatalf("expected normalized username, got %q", resp.User.Username)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected tokens in response")
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password hash must not be serialized: %s", rec.Body.String())
	}
}

func TestUserHandlerRegister_Duplicate(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	r := setupUserRouter(svc, newTestJWT())

	if rec := performRequest(r, http.MethodPost, "/auth/register", janeRegistration); rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	rec := performRequest(r, http.MethodPost, "/auth/register", janeRegistration)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestUserHandlerRegister_InvalidInput(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	r := setupUserRouter(svc, newTestJWT())

	cases := []map[string]string{
		{"username": "jane", "name": "Jane", "password": "secret1", "email": "not-an-email"},
		{"username": "j", "name": "Jane", "password": "secret1", "email": "jane@example.com"},
		{"username": "jane", "name": "Jane", "password": "123", "email": "jane@example.com"},
		{"username": "jane", "name": "Jane", "password": strings.Repeat("p", 73), "email": "jane@example.com"},
		{"username": "jane"},
	}
	for _, body := range cases {
		rec := performRequest(r, http.MethodPost, "/auth/register", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %v, got %d", body, rec.Code)
		}
	}
}

func TestUserHandlerLogin_Success(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	r := setupUserRouter(svc, newTestJWT())
	performRequest(r, http.MethodPost, "/auth/register", janeRegistration)

	rec := performRequest(r, http.MethodPost, "/auth/login", map[string]string{
		"username": "JANE.DOE",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if resp := decodeAuth(t, rec); resp.Tokens.AccessToken == "" {
		t.Fatalf("expected access token")
	}
}

func TestUserHandlerLogin_WrongPassword(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	r := setupUserRouter(svc, newTestJWT())
	performRequest(r, http.MethodPost, "/auth/register", janeRegistration)

	rec := performRequest(r, http.MethodPost, "/auth/login", map[string]string{
		"username": "jane.doe",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestUserHandlerLogin_RateLimited(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMockUserRepo(), &mockLimiter{allow: false})
	r := setupUserRouter(svc, newTestJWT())

	rec := performRequest(r, http.MethodPost, "/auth/login", map[string]string{
		"username": "jane.doe",
		"password": "secret1",
	})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
}

func TestUserHandlerRefreshAndLogout(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	r := setupUserRouter(svc, newTestJWT())
	tokens := decodeAuth(t, performRequest(r, http.MethodPost, "/auth/register", janeRegistration)).Tokens

	rec := performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": tokens.RefreshToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var refreshed struct {
		Tokens service.TokenPair `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode refresh: %v", err)
	}

	// el refresh anterior quedó rotado
	rec = performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": tokens.RefreshToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for rotated token, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": refreshed.Tokens.RefreshToken})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": refreshed.Tokens.RefreshToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 after logout, got %d", rec.Code)
	}
}
