package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/driveluxe/car_rental_backend/internal/apperrors"
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	"github.com/driveluxe/car_rental_backend/internal/models"
	"github.com/driveluxe/car_rental_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, password_hash, first_name, last_name, role, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user account data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	m := mapping.ToModelUser(*user)
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id;`,
		m.Email,
		m.PasswordHash,
		m.FirstName,
		m.LastName,
		m.Role,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&user.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, m.Email)
		}
		return apperrors.NewAppError(500, "failed to save user", err)
	}
	return nil
}

// FindUserByID retrieves a user by id.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	m, err := scanUser(r.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
		}
		return nil, apperrors.NewAppError(500, "failed to query user", err)
	}
	d := mapping.ToDomainUser(*m)
	return &d, nil
}

// FindUserByEmail retrieves a user by email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m, err := scanUser(r.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1);`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query user", err)
	}
	d := mapping.ToDomainUser(*m)
	return &d, nil
}
