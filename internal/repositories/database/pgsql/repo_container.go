package pgsql

import (
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		CarRepo:     newPgxCarRepository(dbPool),
		BookingRepo: newPgxBookingRepository(dbPool),
	}
}
