package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidToken is returned for a visitor token that fails verification
var ErrInvalidToken = errors.New("invalid visitor token")

// Middleware sets the JSON content type and CORS headers shared by every route
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenIssuer signs and verifies anonymous visitor tokens
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// NewTokenIssuer returns an issuer for HS256 tokens. An empty secret is
// replaced by a random one, which invalidates tokens on restart.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if secret == "" {
		zap.S().Warn("VISITOR_TOKEN_SECRET not set, visitor tokens will not survive a restart")
		secret = uuid.NewString() + uuid.NewString()
	}
	return &TokenIssuer{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

// Issue creates a new visitor id and its signed token
func (t *TokenIssuer) Issue() (token, visitorID string, err error) {
	visitorID = uuid.NewString()
	now := t.Now()
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign visitor token: %w", err)
	}
	return signed, visitorID, nil
}

// Parse verifies a token and returns the visitor id it carries
func (t *TokenIssuer) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject is not a visitor id", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// VisitorMiddleware requires a valid visitor token, taken from the
// Authorization header or, for websocket upgrades, the token query parameter
func (t *TokenIssuer) VisitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			token = r.URL.Query().Get("token")
		}

		visitorID, err := t.Parse(token)
		if err != nil {
			zap.S().Debugw("unauthorized", "url", r.URL, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), visitorID)))
	})
}
