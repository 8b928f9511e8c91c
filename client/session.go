// Package client is the application-side half of the balance app: the
// session slot, the HTTP gateway to the backend, the refresh signal
// shared between views, the route guard and the page controllers.
// Everything is injected through App rather than read from globals, so
// each piece can be exercised on its own.
package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// SessionStore is the persistent token/user slot every page reads at
// mount or before an outgoing request. It never validates or expires
// the token itself; expiry is only ever discovered through a 401.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

type sessionData struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath places the slot under the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "balance", "session.json"), nil
}

func (s *SessionStore) SetSession(token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(sessionData{Token: token, UserID: userID})
}

// Token returns the stored token, or "" when no session exists.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Token
}

// UserID returns the stored user id, or "" when no session exists.
func (s *SessionStore) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UserID
}

// ClearSession removes both values. Used on logout and after the
// server rejects the token.
func (s *SessionStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *SessionStore) read() sessionData {
	var d sessionData
	b, err := os.ReadFile(s.path)
	if err != nil {
		return d
	}
	_ = json.Unmarshal(b, &d)
	return d
}

func (s *SessionStore) write(d sessionData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}
