// Package store defines the operation set of the simulated backend
// used when the live service is unreachable or mock mode is forced.
package store

import (
	"context"
	"errors"

	"github.com/Tsedii1275/campusadmin/internal/core/domain"
)

var (
	// ErrNotFound is returned when a mutation targets an id that does
	// not exist in the store.
	ErrNotFound = errors.New("user not found")
)

// Backend mirrors the live service's operation set over in-process
// state. Implementations are the single writer of their collections.
type Backend interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, in domain.CreateUserInput) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (domain.User, error)
	UpdateUserStatus(ctx context.Context, id int64, status domain.UserStatus) (domain.User, error)
	ResetPassword(ctx context.Context, id int64) (string, error)

	GetProfile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, in domain.UpdateProfileInput) (domain.Profile, error)
}
