// Package auth exposes the "is the user authenticated" signal consumed by the
// settings synchronizer, backed by a bearer access token.
package auth

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signal reports whether remote operations may run right now.
type Signal interface {
	Authenticated() bool
}

// Static is a fixed Signal, used for --offline and in tests.
type Static bool

// Authenticated implements Signal.
func (s Static) Authenticated() bool { return bool(s) }

// Token holds the current bearer token. The zero value is unauthenticated.
type Token struct {
	mu    sync.RWMutex
	value string
	now   func() time.Time
}

// NewToken wraps a raw bearer token.
func NewToken(value string) *Token {
	return &Token{value: strings.TrimSpace(value), now: time.Now}
}

// LoadToken reads a bearer token from path. A missing file yields an empty,
// unauthenticated Token.
func LoadToken(path string) (*Token, error) {
	if strings.TrimSpace(path) == "" {
		return NewToken(""), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewToken(""), nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	return NewToken(string(data)), nil
}

// Bearer returns the raw token, or "" when logged out.
func (t *Token) Bearer() string {
	if t == nil {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value
}

// SetToken replaces the token (login / refresh).
func (t *Token) SetToken(value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = strings.TrimSpace(value)
}

// Clear drops the token (logout).
func (t *Token) Clear() {
	t.SetToken("")
}

// Authenticated is true when a token is present and, for JWTs carrying an
// exp claim, not yet expired. Signatures are not checked here; the server
// is the verifier.
func (t *Token) Authenticated() bool {
	if t == nil {
		return false
	}
	t.mu.RLock()
	value := t.value
	now := t.now
	t.mu.RUnlock()

	if value == "" {
		return false
	}
	claims, ok := parseClaims(value)
	if !ok {
		return true // opaque token
	}
	if claims.ExpiresAt == nil {
		return true
	}
	if now == nil {
		now = time.Now
	}
	return now().Before(claims.ExpiresAt.Time)
}

// Subject returns the JWT sub claim, or "" for opaque or missing tokens.
func (t *Token) Subject() string {
	claims, ok := parseClaims(t.Bearer())
	if !ok {
		return ""
	}
	return claims.Subject
}

func parseClaims(value string) (*jwt.RegisteredClaims, bool) {
	if value == "" {
		return nil, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return nil, false
	}
	return claims, true
}
