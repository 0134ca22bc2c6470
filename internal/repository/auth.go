package repository

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"dockify/internal/domain"
	"dockify/internal/remote"
)

// AuthRemote is the backend side of authentication.
type AuthRemote interface {
	Login(ctx context.Context, req remote.LoginRequestDTO) (domain.Result[remote.LoginResponseDTO], error)
	Register(ctx context.Context, req remote.RegisterRequestDTO) (domain.Result[remote.RegisterResponseDTO], error)
}

// SessionStore persists the signed-in user.
type SessionStore interface {
	Save(ctx context.Context, sess domain.Session) domain.Result[struct{}]
	Load(ctx context.Context) domain.Result[domain.Session]
	Clear(ctx context.Context) domain.Result[struct{}]
	HasSession(ctx context.Context) bool
}

// AuthRepository implements domain.AuthRepository.
type AuthRepository struct {
	remote AuthRemote
	store  SessionStore
	log    *zap.Logger
}

var _ domain.AuthRepository = (*AuthRepository)(nil)

// NewAuthRepository creates an AuthRepository.
func NewAuthRepository(r AuthRemote, s SessionStore, log *zap.Logger) *AuthRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthRepository{remote: r, store: s, log: log}
}

// Login authenticates against the backend and persists the session. A 401
// from the login endpoint means wrong credentials.
func (r *AuthRepository) Login(ctx context.Context, creds domain.Credentials) (domain.Result[domain.User], error) {
	res, err := r.remote.Login(ctx, remote.LoginRequestDTO{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return domain.Result[domain.User]{}, err
	}
	res = res.MapError(func(e domain.DataError) domain.DataError {
		if e == domain.AuthUnauthorized {
			return domain.AuthInvalidCredentials
		}
		return e
	})

	return domain.FlatMap(res, func(resp remote.LoginResponseDTO) domain.Result[domain.User] {
		user := remote.UserFromDTO(resp.User)
		saved := r.store.Save(ctx, domain.Session{User: user, Token: resp.Token}).
			OnError(func(e domain.DataError) { r.log.Error("save session", zap.Error(e)) })
		return domain.Map(saved, func(struct{}) domain.User { return user })
	}), nil
}

// Register creates an account and returns its id.
func (r *AuthRepository) Register(ctx context.Context, reg domain.Registration) (domain.Result[string], error) {
	res, err := r.remote.Register(ctx, remote.RegistrationToDTO(reg))
	if err != nil {
		return domain.Result[string]{}, err
	}
	return domain.Map(res, func(d remote.RegisterResponseDTO) string {
		return strconv.Itoa(d.UserID)
	}), nil
}

// Logout forgets the stored session.
func (r *AuthRepository) Logout(ctx context.Context) domain.Result[struct{}] {
	return r.store.Clear(ctx)
}

// GetCurrentUser returns the stored user.
func (r *AuthRepository) GetCurrentUser(ctx context.Context) domain.Result[domain.User] {
	return domain.Map(r.store.Load(ctx), func(s domain.Session) domain.User { return s.User })
}

// IsLoggedIn reports whether a session is stored.
func (r *AuthRepository) IsLoggedIn(ctx context.Context) bool {
	return r.store.HasSession(ctx)
}
