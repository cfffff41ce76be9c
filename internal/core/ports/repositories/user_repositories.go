package repositories

import (
	"context"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
)

// UserReader defines read operations for user accounts.
type UserReader interface {
	// FindUserByID retrieves a user by id.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user accounts.
type UserWriter interface {
	// SaveUser inserts a new user. On success user.UserID is set.
	// Returns ErrDuplicate if the email is taken.
	SaveUser(ctx context.Context, user *domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
