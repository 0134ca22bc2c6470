// Package backend holds the services of the reference server: accounts and
// sessions, metric storage, location search and recommendations.
package backend

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dockify/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists indicates that the email or username is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidRegistration indicates missing or malformed registration fields.
	ErrInvalidRegistration = errors.New("invalid registration")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// DefaultSessionTTL is used when NewAuthService is given a zero TTL.
const DefaultSessionTTL = 24 * time.Hour

const minPasswordLength = 6

// Registration is a sign-up request.
type Registration struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

// LoginResult is a successful sign-in.
type LoginResult struct {
	Account *domain.Account
	Token   string
}

// AuthService handles registration, authentication and session management.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Register creates an account and returns its id.
func (s *AuthService) Register(ctx context.Context, reg Registration) (int64, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Username = strings.TrimSpace(reg.Username)
	if !strings.Contains(reg.Email, "@") || reg.Username == "" || len(reg.Password) < minPasswordLength {
		return 0, ErrInvalidRegistration
	}

	if existing, err := s.accounts.AccountByEmail(ctx, reg.Email); err != nil {
		return 0, err
	} else if existing != nil {
		return 0, ErrUserExists
	}
	if existing, err := s.accounts.AccountByUsername(ctx, reg.Username); err != nil {
		return 0, err
	} else if existing != nil {
		return 0, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	acc, err := s.accounts.CreateAccount(ctx, domain.Account{
		Username:     reg.Username,
		Email:        reg.Email,
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, domain.ErrConflict) {
		return 0, ErrUserExists
	}
	if err != nil {
		return 0, fmt.Errorf("create account: %w", err)
	}
	return acc.ID, nil
}

// Login authenticates by email and creates a session.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent, ip string) (*LoginResult, error) {
	acc, err := s.accounts.AccountByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || acc == nil {
		return nil, ErrInvalidCredentials
	}

	// SSO-provisioned accounts have no password.
	if acc.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, acc.ID, userAgent, ip)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Account: acc, Token: token}, nil
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// ValidateSession resolves a bearer token to its account.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Account, error) {
	session, err := s.sessions.SessionByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || !ConstantTimeCompare(session.Token, token) {
		return nil, ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, ErrSessionExpired
	}

	acc, err := s.accounts.AccountByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acc == nil {
		return nil, ErrUserNotFound
	}
	return acc, nil
}

// LoginWithEmail creates a session for an already authenticated user (e.g. via SSO).
// Unknown emails are provisioned without a password.
func (s *AuthService) LoginWithEmail(ctx context.Context, email, userAgent, ip string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidCredentials
	}

	acc, err := s.accounts.AccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		username, _, _ := strings.Cut(email, "@")
		acc, err = s.accounts.CreateAccount(ctx, domain.Account{
			Username:  email,
			Email:     email,
			FirstName: username,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			// Lost a race against a concurrent provision.
			acc, err = s.accounts.AccountByEmail(ctx, email)
			if err != nil || acc == nil {
				return nil, fmt.Errorf("provision account: %w", errors.Join(err, ErrUserNotFound))
			}
		}
	}

	token, err := s.createSession(ctx, acc.ID, userAgent, ip)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Account: acc, Token: token}, nil
}

// PruneSessions deletes every expired session.
func (s *AuthService) PruneSessions(ctx context.Context) error {
	return s.sessions.DeleteExpiredSessions(ctx, s.now())
}

func (s *AuthService) createSession(ctx context.Context, userID int64, userAgent, ip string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := s.now()
	err = s.sessions.CreateSession(ctx, domain.AccountSession{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
