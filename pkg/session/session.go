package session

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNotAuthenticated is returned by any adapter operation attempted without
// a usable session. Callers surface it directly; there is no retry.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session is an explicit authenticated-session capability. The adapters hold
// one and refuse to operate once it has been revoked or its token expired.
type Session struct {
	mu      sync.Mutex
	token   *oauth2.Token
	source  oauth2.TokenSource
	revoked bool
}

// Acquire wraps an OAuth token obtained elsewhere; the interactive consent
// flow is outside this module. When cfg is non-nil the session refreshes the
// token through it, otherwise the token is used as-is.
func Acquire(cfg *oauth2.Config, token *oauth2.Token) *Session {
	s := &Session{token: token}
	if cfg != nil {
		s.source = cfg.TokenSource(context.Background(), token)
	} else {
		s.source = oauth2.StaticTokenSource(token)
	}
	return s
}

// Valid reports whether the session can still authenticate requests.
func (s *Session) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.revoked && s.token.Valid()
}

// Revoke invalidates the session locally. Revoking the token at the identity
// provider is the caller's concern.
func (s *Session) Revoke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = true
}

// TokenSource exposes the session's token source for API client construction.
func (s *Session) TokenSource() oauth2.TokenSource {
	return s.source
}

// Check returns ErrNotAuthenticated when the session is missing or invalid.
func (s *Session) Check() error {
	if s == nil || !s.Valid() {
		return ErrNotAuthenticated
	}
	return nil
}
