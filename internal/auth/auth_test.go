package auth

import (
	"errors"
	"testing"

	"todo/internal/service"
	"todo/internal/store"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	creds := NewCredentialStore(store.NewMemoryStore())

	if _, err := creds.Register("alice", "alice@example.com", "secret", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	id, err := creds.Authenticate("alice", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if id.Username != "alice" || id.Email != "alice@example.com" {
		t.Errorf("unexpected identity: %#v", id)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	creds := NewCredentialStore(store.NewMemoryStore())
	if _, err := creds.Register("alice", "", "secret", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := creds.Authenticate("alice", "Secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if !errors.Is(err, service.ErrAuth) {
		t.Errorf("expected ErrAuth class, got %v", err)
	}

	_, err = creds.Authenticate("nobody", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	creds := NewCredentialStore(store.NewMemoryStore())
	if _, err := creds.Register("alice", "", "a", "a"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := creds.Register(" alice ", "other@example.com", "b", "b")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	n, err := creds.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Errorf("expected store size 1, got %d", n)
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	creds := NewCredentialStore(store.NewMemoryStore())

	_, err := creds.Register("alice", "", "a", "b")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("expected ErrValidation class, got %v", err)
	}
	if n, _ := creds.Len(); n != 0 {
		t.Errorf("expected empty store, got %d", n)
	}
}

func TestRegister_PersistsAcrossInstances(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	if _, err := NewCredentialStore(s).Register("bob", "", "pw", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := NewCredentialStore(s).Authenticate("bob", "pw"); err != nil {
		t.Errorf("expected persisted identity, got %v", err)
	}
}

func TestSession_SetRestoreClear(t *testing.T) {
	s := store.NewMemoryStore()
	sess := NewSession(s)

	if _, ok := sess.Current(); ok {
		t.Fatal("new session should be empty")
	}
	if err := sess.Set(Identity{Username: "alice"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	restored := NewSession(s)
	id, ok, err := restored.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !ok || id.Username != "alice" {
		t.Fatalf("expected restored alice, got %#v ok=%v", id, ok)
	}
	if cur, ok := restored.Current(); !ok || cur.Username != "alice" {
		t.Errorf("restore should set current identity, got %#v", cur)
	}

	if err := restored.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := restored.Current(); ok {
		t.Error("session should be empty after Clear")
	}
	if _, ok, _ := NewSession(s).Restore(); ok {
		t.Error("persisted session should be gone after Clear")
	}
}

func TestSession_RestoreNothingStored(t *testing.T) {
	_, ok, err := NewSession(store.NewMemoryStore()).Restore()
	if err != nil || ok {
		t.Errorf("expected no session and no error, got ok=%v err=%v", ok, err)
	}
}

func TestSession_RestoreDiscardsUnreadable(t *testing.T) {
	s := store.NewMemoryStore()
	if err := s.Set(store.SessionKey, []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, ok, err := NewSession(s).Restore()
	if err != nil || ok {
		t.Fatalf("expected no session and no error, got ok=%v err=%v", ok, err)
	}
	if _, err := s.Get(store.SessionKey); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unreadable session should be deleted, got %v", err)
	}
}
