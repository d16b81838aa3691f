package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func protectedRouter(t *testing.T) (*gin.Engine, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtSvc := newTestJWT()
	pair, err := jwtSvc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(jwtSvc), func(c *gin.Context) {
		claims, ok := requireClaims(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, claims.Username)
	})
	return r, pair.AccessToken, pair.RefreshToken
}

func TestJWTAuthMiddleware_AllowsValidAccessToken(t *testing.T) {
	r, access, _ := protectedRouter(t)

	for _, header := range []string{"Bearer " + access, "bearer " + access, "  BEARER   " + access + "  "} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || rec.Body.String() != "jane" {
			t.Fatalf("header %q: expected 200 jane, got %d %q", header, rec.Code, rec.Body.String())
		}
	}
}

func TestJWTAuthMiddleware_Rejects(t *testing.T) {
	r, _, refresh := protectedRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no scheme", "token"},
		{"empty bearer", "Bearer "},
		{"garbage", "Bearer not-a-jwt"},
		{"refresh token", "Bearer " + refresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestJWTAuthMiddleware_NotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := performRequest(r, http.MethodGet, "/protected", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := bearerToken("Bearer abc"); !ok || tok != "abc" {
		t.Fatalf("expected abc, got %q %v", tok, ok)
	}
	if _, ok := bearerToken("Basic abc"); ok {
		t.Fatalf("expected basic scheme rejected")
	}
}
