package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"career-coach/internal/domain"
)

const testSecret = "secret"

func testUser() domain.User {
	return domain.User{
		ID:        "u1",
		Username:  "jane",
		Name:      "Jane Doe",
		CreatedAt: time.Now().UTC(),
	}
}

func newTestJWTService() *JWTService {
	return NewJWTServiceWithStore(testSecret, 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())
}

func accessClaims(now time.Time) Claims {
	return Claims{
		UserID:    "u1",
		Username:  "jane",
		TokenType: tokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
}

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTService_PairCarriesIdentity(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("expected expires_in to match access ttl, got %d", pair.ExpiresIn)
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "jane" || claims.Name != "Jane Doe" || claims.Issuer != tokenIssuer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID != "" {
		t.Fatalf("access tokens carry no jti, got %q", claims.ID)
	}
}

func TestJWTService_RefreshIsSingleUse(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	rotated, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh pair: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("expected a new refresh token")
	}
	claims, err := svc.ParseAccessToken(rotated.AccessToken)
	if err != nil || claims.Username != "jane" {
		t.Fatalf("expected identity carried over, got %+v %v", claims, err)
	}

	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected replayed refresh to fail, got %v", err)
	}
	if _, err := svc.RefreshPair(rotated.RefreshToken); err != nil {
		t.Fatalf("rotated refresh should still work: %v", err)
	}
}

func TestJWTService_LogoutRevokesRefresh(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if err := svc.RevokeRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("revoke refresh: %v", err)
	}
	if _, err := svc.RefreshPair(pair.RefreshToken); err == nil {
		t.Fatalf("expected refresh to fail after revoke")
	}
	if err := svc.RevokeRefresh(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected access token to be rejected on logout, got %v", err)
	}
}

func TestJWTService_TokenTypesAreNotInterchangeable(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := svc.RefreshPair(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("access token used as refresh: got %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("refresh token used as access: got %v", err)
	}
}

func TestJWTService_RequiresSecretAndUser(t *testing.T) {
	noSecret := NewJWTServiceWithStore("", 0, 0, nil)
	if _, err := noSecret.GeneratePair(testUser()); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
	if _, err := newTestJWTService().GeneratePair(domain.User{Username: "ghost"}); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid without user id, got %v", err)
	}
}

func TestJWTService_RejectsForgedAccessTokens(t *testing.T) {
	svc := newTestJWTService()
	now := time.Now().UTC()

	expired := accessClaims(now.Add(-time.Hour))
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-59 * time.Minute))

	wrongIssuer := accessClaims(now)
	wrongIssuer.Issuer = "other-issuer"

	subjectMismatch := accessClaims(now)
	subjectMismatch.Subject = "u2"

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), expired), ErrJWTExpired},
		{"wrong issuer", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer), ErrJWTInvalid},
		{"subject mismatch", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), subjectMismatch), ErrJWTInvalid},
		{"other secret", signClaims(t, jwt.SigningMethodHS256, []byte("other"), accessClaims(now)), ErrJWTInvalid},
		{"hs512", signClaims(t, jwt.SigningMethodHS512, []byte(testSecret), accessClaims(now)), ErrJWTInvalid},
		{"alg none", signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, accessClaims(now)), ErrJWTInvalid},
		{"garbage", "not.a.jwt", ErrJWTInvalid},
		{"blank", "  ", ErrJWTInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ParseAccessToken(tt.token); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
