package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[jti], nil
}

func TestSignAndParseSession(t *testing.T) {
	token, claims, err := SignSession("test-secret", "admin-123", time.Hour)
	if err != nil {
		t.Fatalf("SignSession() unexpected error: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("SignSession() should set a token id")
	}
	parsed, err := ParseSession("test-secret", token)
	if err != nil {
		t.Fatalf("ParseSession() unexpected error: %v", err)
	}
	if parsed.Subject != "admin-123" || parsed.ID != claims.ID {
		t.Fatalf("ParseSession() returned %+v, want subject admin-123 id %s", parsed, claims.ID)
	}
}

func TestParseSessionInvalidSignature(t *testing.T) {
	token, _, err := SignSession("secret-a", "admin-123", time.Hour)
	if err != nil {
		t.Fatalf("SignSession() error: %v", err)
	}
	if _, err := ParseSession("secret-b", token); err == nil {
		t.Fatal("ParseSession() expected invalid signature error")
	}
}

func TestParseSessionExpired(t *testing.T) {
	token, _, err := SignSession("secret", "admin-123", -time.Minute)
	if err != nil {
		t.Fatalf("SignSession() error: %v", err)
	}
	if _, err := ParseSession("secret", token); err == nil {
		t.Fatal("ParseSession() expected expiration error")
	}
}

func authedRequest(t *testing.T, secret string) (*http.Request, *SessionClaims) {
	t.Helper()
	token, claims, err := SignSession(secret, "admin-123", time.Hour)
	if err != nil {
		t.Fatalf("SignSession() error: %v", err)
	}
	req := httptest.NewRequest("GET", "/admin/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req, claims
}

func TestAuthJWTPassesValidSession(t *testing.T) {
	var gotAdminID string
	handler := AuthJWT("secret", &fakeRevocations{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdminID = AdminIDFromContext(r.Context())
	}))

	req, _ := authedRequest(t, "secret")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if gotAdminID != "admin-123" {
		t.Fatalf("admin id = %q, want admin-123", gotAdminID)
	}
}

func TestAuthJWTRejectsMissingToken(t *testing.T) {
	called := false
	handler := AuthJWT("secret", nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/admin/summary", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if called {
		t.Fatal("protected handler ran without a session")
	}
}

func TestAuthJWTRejectsRevokedToken(t *testing.T) {
	req, claims := authedRequest(t, "secret")
	handler := AuthJWT("secret", &fakeRevocations{revoked: map[string]bool{claims.ID: true}})(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("protected handler ran with a revoked session")
		}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestAuthJWTRejectsWhenRevocationCheckFails(t *testing.T) {
	req, _ := authedRequest(t, "secret")
	handler := AuthJWT("secret", &fakeRevocations{err: errors.New("redis down")})(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("protected handler ran when revocation check failed")
		}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}
