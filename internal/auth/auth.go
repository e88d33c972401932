// Package auth implements the local credential store and session.
//
// Credentials are kept in plaintext. The mechanism stands in for a real
// authentication backend and must not be used to protect anything.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/validation"
)

var (
	// ErrPasswordMismatch means the password and its confirmation differ.
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", service.ErrValidation)

	// ErrUsernameTaken means the username is already registered.
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", service.ErrAuth)

	// ErrInvalidCredentials means no identity matches the username and password.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", service.ErrAuth)
)

// Identity is a registered user.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CredentialStore is the persisted list of registered identities.
type CredentialStore struct {
	mu    sync.Mutex
	store store.Store
}

// NewCredentialStore creates a credential store backed by s.
func NewCredentialStore(s store.Store) *CredentialStore {
	return &CredentialStore{store: s}
}

func (c *CredentialStore) load() ([]Identity, error) {
	var users []Identity
	err := store.GetJSON(c.store, store.UsersKey, &users)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return users, err
}

// Register adds a new identity. It does not log the user in.
// The username is trimmed; the password is stored as given.
func (c *CredentialStore) Register(username, email, password, confirm string) (Identity, error) {
	id := Identity{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := validation.Register(validation.Registration{
		Username: id.Username,
		Email:    id.Email,
		Password: id.Password,
	}); err != nil {
		return Identity{}, err
	}
	if password != confirm {
		return Identity{}, ErrPasswordMismatch
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	users, err := c.load()
	if err != nil {
		return Identity{}, err
	}
	for _, u := range users {
		if u.Username == id.Username {
			return Identity{}, ErrUsernameTaken
		}
	}

	users = append(users, id)
	if err := store.SetJSON(c.store, store.UsersKey, users); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Authenticate returns the identity matching both username and password exactly.
func (c *CredentialStore) Authenticate(username, password string) (Identity, error) {
	username = strings.TrimSpace(username)

	c.mu.Lock()
	defer c.mu.Unlock()

	users, err := c.load()
	if err != nil {
		return Identity{}, err
	}
	for _, u := range users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return Identity{}, ErrInvalidCredentials
}

// Len returns the number of registered identities.
func (c *CredentialStore) Len() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	users, err := c.load()
	return len(users), err
}
