// Package domain contains the core business entities and interfaces.
//
// Client ports return (Result[T], error). The Result carries every
// categorized failure; the plain error is reserved for context
// cancellation, which is never folded into the DataError taxonomy.
package domain

import (
	"context"
	"strings"
)

// User is the signed-in user as known to the client.
type User struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	CreatedAt string
}

// FullName joins the first and last names, falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Credentials are the inputs of a password login.
type Credentials struct {
	Email    string
	Password string
}

// Registration are the inputs of account creation.
type Registration struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

// Session is what the client persists after a successful login.
type Session struct {
	User  User
	Token string
}

// AuthRepository is the client port for authentication.
type AuthRepository interface {
	Login(ctx context.Context, creds Credentials) (Result[User], error)
	Register(ctx context.Context, reg Registration) (Result[string], error)
	Logout(ctx context.Context) Result[struct{}]
	GetCurrentUser(ctx context.Context) Result[User]
	IsLoggedIn(ctx context.Context) bool
}
