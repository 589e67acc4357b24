package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type adminKey string

const (
	adminIDKey adminKey = "admin_id"
)

// SessionClaims are the registered claims carried by an admin session token.
// ID (jti) keys the revocation check so logout kills the token everywhere.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// SignSession issues a session token for the admin id.
func SignSession(secret, adminID string, ttl time.Duration) (string, *SessionClaims, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   adminID,
			Issuer:    "kakasaku-api",
			Audience:  jwt.ClaimStrings{"kakasaku-admin"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// ParseSession verifies the token signature and expiry and returns its
// claims. Revocation is checked separately because it needs I/O.
func ParseSession(secret, token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AuthJWT gates admin routes: bearer token, valid signature, not expired,
// not revoked. The admin id lands on the request context.
func AuthJWT(secret string, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			claims, err := ParseSession(secret, token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if revoked != nil {
				gone, err := revoked.IsRevoked(r.Context(), claims.ID)
				if err != nil || gone {
					http.Error(w, "session ended", http.StatusUnauthorized)
					return
				}
			}
			ctx := context.WithValue(r.Context(), adminIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AdminIDFromContext returns the authenticated admin id, or "".
func AdminIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(adminIDKey).(string); ok {
		return v
	}
	return ""
}
