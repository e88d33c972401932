package auth

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"todo/internal/store"
)

// Session holds at most one authenticated identity and persists it so a
// later process can restore it.
type Session struct {
	mu      sync.RWMutex
	store   store.Store
	current *Identity
	log     *logrus.Entry
}

// NewSession creates an empty session backed by s.
func NewSession(s store.Store) *Session {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Session{store: s, log: logrus.NewEntry(l)}
}

// SetLog replaces the logger used to report discarded sessions.
func (s *Session) SetLog(log *logrus.Entry) {
	if log != nil {
		s.log = log.WithField("component", "session")
	}
}

// Current returns the active identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// Set makes id the active identity and persists it.
func (s *Session) Set(id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := store.SetJSON(s.store, store.SessionKey, id); err != nil {
		return err
	}
	s.current = &id
	return nil
}

// Clear drops the active identity and its persisted copy.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return s.store.Delete(store.SessionKey)
}

// Restore loads a persisted session. It reports false, with no error,
// when nothing is stored. A stored session that does not decode is
// deleted and treated as no session.
func (s *Session) Restore() (Identity, bool, error) {
	var id Identity
	err := store.GetJSON(s.store, store.SessionKey, &id)
	if errors.Is(err, store.ErrNotFound) {
		return Identity{}, false, nil
	}
	if errors.Is(err, store.ErrInvalid) {
		s.log.WithError(err).Warn("discarding unreadable session")
		if err := s.store.Delete(store.SessionKey); err != nil {
			return Identity{}, false, err
		}
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, err
	}
	if id.Username == "" {
		return Identity{}, false, nil
	}

	s.mu.Lock()
	s.current = &id
	s.mu.Unlock()
	return id, true, nil
}
