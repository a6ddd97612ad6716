package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// Persisted session keys.
const (
	KeyAccessToken = "access_token"
	KeyUserID      = "user_id"
	KeyUserProfile = "user_profile"
)

var sessionAllowList = []string{KeyAccessToken, KeyUserID, KeyUserProfile}

// SessionStore holds the authenticated user and access token, backed
// by the session store file. Login persists the allow-listed keys;
// Logout removes them but leaves the file in place.
type SessionStore struct {
	store *Store

	mu    sync.RWMutex
	user  *core.User
	token string
}

// OpenSession opens the session store at path and restores any
// persisted session into memory.
func OpenSession(path string) (*SessionStore, error) {
	store, err := NewStore(path, sessionAllowList)
	if err != nil {
		return nil, err
	}

	s := &SessionStore{store: store}

	var token string
	if ok, err := store.Get(KeyAccessToken, &token); err == nil && ok {
		s.token = token
	}
	var user core.User
	if ok, err := store.Get(KeyUserProfile, &user); err == nil && ok {
		s.user = &user
	}
	return s, nil
}

// Login sets the in-memory session and persists the access_token and
// user_id keys (plus the profile for restore on next start).
func (s *SessionStore) Login(user *core.User, token string) error {
	if user == nil || token == "" {
		return fmt.Errorf("login requires a user and a non-empty token")
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	if err := s.store.Set(KeyAccessToken, token); err != nil {
		return err
	}
	if err := s.store.Set(KeyUserID, user.ID); err != nil {
		return err
	}
	return s.store.Set(KeyUserProfile, user)
}

// Logout clears the in-memory session and removes the persisted keys.
// The store file itself is not deleted.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	for _, key := range sessionAllowList {
		if err := s.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// IsAuthenticated reports whether both a user and a token are set.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// User returns the current user, nil when logged out.
func (s *SessionStore) User() *core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the current access token, empty when logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserID returns the current user's ID, empty when logged out.
func (s *SessionStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// Claims decodes the access token's registered claims without
// verifying the signature. Verification is the backend's job; the
// client only inspects expiry to decide whether a re-login is needed.
func (s *SessionStore) Claims() (*jwt.RegisteredClaims, error) {
	token := s.Token()
	if token == "" {
		return nil, fmt.Errorf("no access token")
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	return claims, nil
}

// TokenExpired reports whether the access token carries an exp claim
// in the past. Tokens without an exp claim are treated as live.
func (s *SessionStore) TokenExpired() bool {
	claims, err := s.Claims()
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
