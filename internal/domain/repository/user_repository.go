// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user with their profile preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// ExistsByUsername reports whether the username is already taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is registered, excluding the
	// given user id (uuid.Nil excludes nothing).
	ExistsByEmail(ctx context.Context, email string, excludeUserID uuid.UUID) (bool, error)

	// Create persists a new user entity together with its profile.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity and its profile.
	Update(ctx context.Context, user *entity.User) error

	// ListProfilesByType returns all profiles of the given type together
	// with their owning users, ordered by username.
	ListProfilesByType(ctx context.Context, profileType entity.ProfileType) ([]*entity.User, error)

	// CountProfilesByType counts profiles of the given type.
	CountProfilesByType(ctx context.Context, profileType entity.ProfileType) (int64, error)
}
