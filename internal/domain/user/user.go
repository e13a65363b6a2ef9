// Package user provides the minimal user model history records reference.
package user

import (
	"context"
	"errors"
	"time"
)

// OperatorUsername is the account attributed to unauthenticated API calls.
const OperatorUsername = "operator"

// User models an account that history records are attributed to.
type User struct {
	ID        string
	Username  string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines storage operations for users.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Upsert(ctx context.Context, user *User) (*User, error)
}

// ErrInvalidUsername indicates an empty username.
var ErrInvalidUsername = errors.New("invalid user: username is required")

// Service persists users.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureUser persists the given username if absent and returns the record.
func (s *Service) EnsureUser(ctx context.Context, username string, email *string) (*User, error) {
	if username == "" {
		return nil, ErrInvalidUsername
	}

	return s.repo.Upsert(ctx, &User{
		Username: username,
		Email:    email,
	})
}
