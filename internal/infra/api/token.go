package api

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer credential attached to outgoing
// requests. An empty token means the request goes out unauthenticated,
// which is not an error.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource backed by a fixed string.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// JWTToken wraps a bearer token that is expected to be a JWT. It never
// rejects the token; it only warns once when the embedded expiry has
// already passed, since the server will start answering 401.
type JWTToken struct {
	raw    string
	log    *slog.Logger
	warned bool
}

func NewJWTToken(raw string, log *slog.Logger) *JWTToken {
	return &JWTToken{raw: raw, log: log}
}

func (t *JWTToken) Token() string {
	if t.raw == "" || t.warned {
		return t.raw
	}

	// Unverified parse: expiry is advisory here, the server is the
	// authority on token validity.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.raw, claims); err != nil {
		return t.raw
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return t.raw
	}
	if exp.Before(time.Now()) {
		t.log.Warn("Bearer token is expired, requests will likely be rejected",
			"expired_at", exp.Time)
		t.warned = true
	}
	return t.raw
}
