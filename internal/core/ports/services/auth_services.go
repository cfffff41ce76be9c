package services

import (
	"context"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	"github.com/driveluxe/car_rental_backend/internal/dto"
)

// AuthSvcFacade handles registration, login and token issuance.
type AuthSvcFacade interface {
	// Register creates a new CUSTOMER account.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and issues a signed bearer token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// GetUserByID retrieves a user account.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// EnsureAdminUser creates the default ADMIN account if no account with the
	// given email exists yet. Called once at startup.
	EnsureAdminUser(ctx context.Context, email, password string) (*domain.User, error)
}
