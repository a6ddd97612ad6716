package state_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/illing1230/ai-memory-agent-sub000/core"
	"github.com/illing1230/ai-memory-agent-sub000/state"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func testUser() *core.User {
	return &core.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"}
}

func TestLoginPersistsKeys(t *testing.T) {
	path := sessionPath(t)
	session, err := state.OpenSession(path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	if err := session.Login(testUser(), "tok-abc"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if !session.IsAuthenticated() {
		t.Error("expected IsAuthenticated after login")
	}
	if session.Token() != "tok-abc" {
		t.Errorf("token = %q, want tok-abc", session.Token())
	}

	// Both keys must be on disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	var onDisk map[string]json.RawMessage
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("parse store file: %v", err)
	}
	if _, ok := onDisk[state.KeyAccessToken]; !ok {
		t.Error("access_token not persisted")
	}
	if _, ok := onDisk[state.KeyUserID]; !ok {
		t.Error("user_id not persisted")
	}
}

func TestLogoutClearsKeysButKeepsFile(t *testing.T) {
	path := sessionPath(t)
	session, err := state.OpenSession(path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if err := session.Login(testUser(), "tok-abc"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if session.IsAuthenticated() {
		t.Error("expected not authenticated after logout")
	}
	if session.User() != nil {
		t.Error("expected nil user after logout")
	}
	if session.Token() != "" {
		t.Error("expected empty token after logout")
	}

	// The store file survives; the keys do not.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("store file should still exist: %v", err)
	}
	var onDisk map[string]json.RawMessage
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("parse store file: %v", err)
	}
	if _, ok := onDisk[state.KeyAccessToken]; ok {
		t.Error("access_token still on disk after logout")
	}
	if _, ok := onDisk[state.KeyUserID]; ok {
		t.Error("user_id still on disk after logout")
	}
}

func TestIsAuthenticatedRequiresBoth(t *testing.T) {
	session, err := state.OpenSession(sessionPath(t))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	if session.IsAuthenticated() {
		t.Error("fresh session should not be authenticated")
	}
	if err := session.Login(nil, "tok"); err == nil {
		t.Error("login without user should fail")
	}
	if err := session.Login(testUser(), ""); err == nil {
		t.Error("login without token should fail")
	}
	if session.IsAuthenticated() {
		t.Error("failed logins must not authenticate")
	}
}

func TestSessionRestoredFromDisk(t *testing.T) {
	path := sessionPath(t)
	first, err := state.OpenSession(path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if err := first.Login(testUser(), "tok-abc"); err != nil {
		t.Fatalf("login: %v", err)
	}

	second, err := state.OpenSession(path)
	if err != nil {
		t.Fatalf("reopen session: %v", err)
	}
	if !second.IsAuthenticated() {
		t.Fatal("expected restored session to be authenticated")
	}
	if second.UserID() != "user-1" {
		t.Errorf("restored user id = %q, want user-1", second.UserID())
	}
	if second.Token() != "tok-abc" {
		t.Errorf("restored token = %q, want tok-abc", second.Token())
	}
}

func TestStoreRejectsUnknownKeys(t *testing.T) {
	store, err := state.NewStore(filepath.Join(t.TempDir(), "s.json"), []string{"known"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Set("known", "ok"); err != nil {
		t.Fatalf("set allow-listed key: %v", err)
	}
	if err := store.Set("unknown", "nope"); err == nil {
		t.Error("expected error for key outside the allow-list")
	}
}

func TestStoreDropsUnknownKeysOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	if err := os.WriteFile(path, []byte(`{"known":"a","stale":"b"}`), 0600); err != nil {
		t.Fatalf("seed store file: %v", err)
	}

	store, err := state.NewStore(path, []string{"known"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if !store.Has("known") {
		t.Error("allow-listed key should load")
	}
	if store.Has("stale") {
		t.Error("key outside the allow-list should be dropped on load")
	}
}

func TestTokenExpiredWithoutExpClaim(t *testing.T) {
	session, err := state.OpenSession(sessionPath(t))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	// Opaque (non-JWT) tokens and tokens without exp are treated as
	// live; the backend is the authority.
	if err := session.Login(testUser(), "opaque-token"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.TokenExpired() {
		t.Error("opaque token should not read as expired")
	}
}
