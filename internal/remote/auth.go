package remote

import (
	"context"
	"net/http"

	"dockify/internal/domain"
)

// AuthSource calls the login and register endpoints.
type AuthSource struct {
	c *Client
}

// NewAuthSource creates an AuthSource.
func NewAuthSource(c *Client) *AuthSource {
	return &AuthSource{c: c}
}

// Login posts credentials to /api/v1/login.
func (s *AuthSource) Login(ctx context.Context, req LoginRequestDTO) (domain.Result[LoginResponseDTO], error) {
	return SafeCall[LoginResponseDTO](ctx, func(ctx context.Context) (*http.Response, error) {
		return s.c.Post(ctx, "/api/v1/login", req)
	})
}

// Register posts a new account to /api/v1/register. A 409 means the email
// or username is taken.
func (s *AuthSource) Register(ctx context.Context, req RegisterRequestDTO) (domain.Result[RegisterResponseDTO], error) {
	return SafeCall[RegisterResponseDTO](ctx, func(ctx context.Context) (*http.Response, error) {
		return s.c.Post(ctx, "/api/v1/register", req)
	}, WithStatus(http.StatusConflict, domain.AuthUserAlreadyExists))
}
