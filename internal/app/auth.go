// Package app holds the client use cases. Each service validates its
// inputs locally and delegates to a domain repository.
package app

import (
	"context"
	"strings"

	"dockify/internal/domain"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// AuthService encapsulates sign-in use cases.
type AuthService struct {
	repo domain.AuthRepository
}

// NewAuthService creates an AuthService backed by the given repository.
func NewAuthService(repo domain.AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Login signs the user in. Blank inputs are rejected without contacting
// the repository.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Result[domain.User], error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return domain.Failure[domain.User](domain.AuthInvalidCredentials), nil
	}
	return s.repo.Login(ctx, domain.Credentials{Email: strings.TrimSpace(email), Password: password})
}

// Register creates an account and returns its id.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.Result[string], error) {
	if !ValidEmail(reg.Email) || len(reg.Password) < MinPasswordLength || strings.TrimSpace(reg.Username) == "" {
		return domain.Failure[string](domain.AuthInvalidCredentials), nil
	}
	return s.repo.Register(ctx, domain.Registration{
		Email:     strings.TrimSpace(reg.Email),
		Password:  reg.Password,
		Username:  strings.TrimSpace(reg.Username),
		FirstName: strings.TrimSpace(reg.FirstName),
		LastName:  strings.TrimSpace(reg.LastName),
	})
}

// Logout forgets the stored session.
func (s *AuthService) Logout(ctx context.Context) domain.Result[struct{}] {
	return s.repo.Logout(ctx)
}

// CurrentUser returns the signed-in user.
func (s *AuthService) CurrentUser(ctx context.Context) domain.Result[domain.User] {
	return s.repo.GetCurrentUser(ctx)
}

// IsLoggedIn reports whether a session is stored.
func (s *AuthService) IsLoggedIn(ctx context.Context) bool {
	return s.repo.IsLoggedIn(ctx)
}

// CurrentUserID returns the id of the signed-in user, or
// Auth.UNAUTHORIZED when nobody is signed in.
func (s *AuthService) CurrentUserID(ctx context.Context) domain.Result[string] {
	return domain.FlatMap(s.repo.GetCurrentUser(ctx), func(u domain.User) domain.Result[string] {
		if strings.TrimSpace(u.ID) == "" {
			return domain.Failure[string](domain.AuthUnauthorized)
		}
		return domain.Success(u.ID)
	}).MapError(func(domain.DataError) domain.DataError { return domain.AuthUnauthorized })
}

// ValidEmail is the loose check used by the sign-in forms.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.Contains(email, "@") && strings.Contains(email, ".")
}
