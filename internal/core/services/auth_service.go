package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/driveluxe/car_rental_backend/internal/apperrors"
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
	"github.com/driveluxe/car_rental_backend/internal/dto"
	"github.com/driveluxe/car_rental_backend/internal/middleware"
	"github.com/driveluxe/car_rental_backend/internal/platform/config"
	"github.com/driveluxe/car_rental_backend/internal/utils"
)

// ErrBadCredentials is deliberately identical for unknown email and wrong
// password so login responses do not leak which accounts exist.
var ErrBadCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

type authService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiryDuration,
		jwtIssuer: cfg.JWTIssuer,
	}
}

// Ensure authService implements the AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         domain.RoleCustomer,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User registered", slog.Int64("user_id", user.UserID))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Failed login attempt", slog.Int64("user_id", user.UserID))
		return nil, ErrBadCredentials
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sign token", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

func (s *authService) issueToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.jwtExpiry)
	claims := middleware.AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.UserID, 10),
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *authService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// EnsureAdminUser creates the default ADMIN account at startup when it does not
// exist yet, so admin-only operations are reachable on a fresh deployment.
func (s *authService) EnsureAdminUser(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: admin email and password are required", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash admin password", err)
	}

	now := time.Now()
	admin := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, admin); err != nil {
		// A concurrent replica may have created it between the check and the insert.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.userRepo.FindUserByEmail(ctx, email)
		}
		return nil, err
	}
	s.LogInfo(ctx, "Default admin account created", slog.Int64("user_id", admin.UserID))
	return admin, nil
}
