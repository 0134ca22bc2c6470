// Package local holds on-device state: the persisted session and the
// in-memory caches used as a fallback when the backend is unreachable.
package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"gopkg.in/yaml.v3"

	"dockify/internal/domain"
)

type sessionFile struct {
	UserID    string `yaml:"user_id"`
	Email     string `yaml:"email"`
	Username  string `yaml:"username"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	CreatedAt string `yaml:"created_at"`
	Token     string `yaml:"token,omitempty"`
}

// SessionStore persists the signed-in user as a small YAML preferences
// file.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore creates a store backed by path. The file is created on
// the first Save.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Save writes the session, replacing any previous one.
func (s *SessionStore) Save(_ context.Context, sess domain.Session) domain.Result[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := yaml.Marshal(sessionFile{
		UserID:    sess.User.ID,
		Email:     sess.User.Email,
		Username:  sess.User.Username,
		FirstName: sess.User.FirstName,
		LastName:  sess.User.LastName,
		CreatedAt: sess.User.CreatedAt,
		Token:     sess.Token,
	})
	if err != nil {
		return domain.Failure[struct{}](domain.LocalWriteError)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return domain.Failure[struct{}](writeError(err))
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return domain.Failure[struct{}](writeError(err))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return domain.Failure[struct{}](writeError(err))
	}
	return domain.Success(struct{}{})
}

// Load reads the stored session. A missing file or an entry without a user
// id is Local.NOT_FOUND.
func (s *SessionStore) Load(_ context.Context) domain.Result[domain.Session] {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Failure[domain.Session](domain.LocalNotFound)
	}
	if err != nil {
		return domain.Failure[domain.Session](domain.LocalReadError)
	}
	var f sessionFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return domain.Failure[domain.Session](domain.LocalReadError)
	}
	if f.UserID == "" {
		return domain.Failure[domain.Session](domain.LocalNotFound)
	}
	return domain.Success(domain.Session{
		User: domain.User{
			ID:        f.UserID,
			Username:  f.Username,
			Email:     f.Email,
			FirstName: f.FirstName,
			LastName:  f.LastName,
			CreatedAt: f.CreatedAt,
		},
		Token: f.Token,
	})
}

// Clear removes the stored session. Clearing an empty store succeeds.
func (s *SessionStore) Clear(_ context.Context) domain.Result[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.Failure[struct{}](domain.LocalWriteError)
	}
	return domain.Success(struct{}{})
}

// HasSession reports whether a session is stored.
func (s *SessionStore) HasSession(ctx context.Context) bool {
	return s.Load(ctx).IsSuccess()
}

// Token returns the stored bearer token, or "".
func (s *SessionStore) Token() string {
	sess, ok := s.Load(context.Background()).Data()
	if !ok {
		return ""
	}
	return sess.Token
}

func writeError(err error) domain.LocalError {
	if errors.Is(err, syscall.ENOSPC) {
		return domain.LocalStorageFull
	}
	return domain.LocalWriteError
}
