package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/apperrors"
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	"github.com/driveluxe/car_rental_backend/internal/models"
	"github.com/driveluxe/car_rental_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// bookingColumns is the SELECT list shared by every booking query.
const bookingColumns = `booking_id, booking_reference, user_id, car_id, start_date, end_date,
	pickup_location, dropoff_location, price_per_day, total_days, total_price, status,
	notes, cancelled_at, cancellation_reason, created_at, updated_at`

// activeStatuses matches bookings that occupy a car.
const activeStatuses = `('PENDING', 'CONFIRMED')`

type PgxBookingRepository struct {
	BaseRepository
}

// newPgxBookingRepository creates a new repository for booking data.
func newPgxBookingRepository(pool *pgxpool.Pool) portsrepo.BookingRepositoryFacade {
	return &PgxBookingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBookingRepository implements portsrepo.BookingRepositoryFacade
var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var m models.Booking
	var pickup, dropoff, notes, reason sql.NullString
	var cancelledAt sql.NullTime
	err := row.Scan(
		&m.BookingID,
		&m.BookingReference,
		&m.UserID,
		&m.CarID,
		&m.StartDate,
		&m.EndDate,
		&pickup,
		&dropoff,
		&m.PricePerDay,
		&m.TotalDays,
		&m.TotalPrice,
		&m.Status,
		&notes,
		&cancelledAt,
		&reason,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.PickupLocation = pickup.String
	m.DropoffLocation = dropoff.String
	m.Notes = notes.String
	m.CancellationReason = reason.String
	if cancelledAt.Valid {
		t := cancelledAt.Time
		m.CancelledAt = &t
	}
	return &m, nil
}

func (r *PgxBookingRepository) findBookingBy(ctx context.Context, q querier, where string, arg any) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + where + `;`
	m, err := scanBooking(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query booking", err)
	}
	d := mapping.ToDomainBooking(*m)
	return &d, nil
}

// FindBookingByID retrieves a booking by its numeric id.
func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return r.findBookingBy(ctx, r.Pool, "booking_id = $1", bookingID)
}

// FindBookingByReference retrieves a booking by its reference code.
func (r *PgxBookingRepository) FindBookingByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.findBookingBy(ctx, r.Pool, "booking_reference = $1", reference)
}

// ReferenceExists reports whether a booking reference is already taken.
func (r *PgxBookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE booking_reference = $1);`, reference,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check booking reference", err)
	}
	return exists, nil
}

// hasConflict runs the overlap existence query: an active booking conflicts with
// [start, end] iff its start_date <= end AND its end_date >= start (inclusive dates).
// The params are cast to date so the comparison never goes through the session
// timezone. excludeBookingID = 0 excludes nothing.
func hasConflict(ctx context.Context, q querier, carID int64, start, end time.Time, excludeBookingID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE car_id = $1
			  AND booking_id != $4
			  AND status IN `+activeStatuses+`
			  AND start_date <= $3::date
			  AND end_date >= $2::date
		);`, carID, start, end, excludeBookingID,
	).Scan(&exists)
	return exists, err
}

// HasConflictingBooking reports whether any active booking for the car overlaps [start, end].
func (r *PgxBookingRepository) HasConflictingBooking(ctx context.Context, carID int64, start, end time.Time) (bool, error) {
	exists, err := hasConflict(ctx, r.Pool, carID, start, end, 0)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check conflicting bookings", err)
	}
	return exists, nil
}

// CountActiveBookingsForCar returns the number of PENDING or CONFIRMED bookings for the car.
func (r *PgxBookingRepository) CountActiveBookingsForCar(ctx context.Context, carID int64) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE car_id = $1 AND status IN `+activeStatuses+`;`, carID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count active bookings", err)
	}
	return count, nil
}

// CreateBooking inserts a booking within one transaction that first locks the car
// row. The row lock serializes all booking writes for the same car, so the overlap
// check and the insert cannot interleave with a concurrent create: of two racing
// requests for overlapping dates, exactly one inserts and the other sees the
// conflict. The partial exclusion constraint on (car_id, active daterange) backs
// this up at the storage layer.
func (r *PgxBookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var carStatus string
	err = tx.QueryRow(ctx,
		`SELECT status FROM cars WHERE car_id = $1 FOR UPDATE;`, booking.CarID,
	).Scan(&carStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: car %d", apperrors.ErrNotFound, booking.CarID)
		}
		return apperrors.NewAppError(500, "failed to lock car row", err)
	}
	if models.CarStatus(carStatus) != models.CarAvailable {
		return fmt.Errorf("%w: car %d is not available for booking (status %s)",
			apperrors.ErrConflict, booking.CarID, carStatus)
	}

	conflict, err := hasConflict(ctx, tx, booking.CarID, booking.StartDate, booking.EndDate, 0)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check conflicting bookings", err)
	}
	if conflict {
		return fmt.Errorf("%w: car %d is already booked for the selected dates",
			apperrors.ErrConflict, booking.CarID)
	}

	m := mapping.ToModelBooking(*booking)
	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (
			booking_reference, user_id, car_id, start_date, end_date,
			pickup_location, dropoff_location, price_per_day, total_days, total_price,
			status, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING booking_id;`,
		m.BookingReference,
		m.UserID,
		m.CarID,
		m.StartDate,
		m.EndDate,
		nullString(m.PickupLocation),
		nullString(m.DropoffLocation),
		m.PricePerDay,
		m.TotalDays,
		m.TotalPrice,
		m.Status,
		nullString(m.Notes),
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&booking.BookingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23P01": // exclusion_violation on the active-interval constraint
				return fmt.Errorf("%w: car %d is already booked for the selected dates",
					apperrors.ErrConflict, booking.CarID)
			case "23505": // unique_violation, e.g. on booking_reference
				return fmt.Errorf("%w: booking reference %s", apperrors.ErrDuplicate, m.BookingReference)
			}
		}
		return apperrors.NewAppError(500, "failed to insert booking", err)
	}

	return r.Commit(ctx, tx)
}

// updateStatusTx flips the booking's status conditionally on its current status
// set, returning the updated row. Callers decide the legality of the transition;
// the conditional UPDATE guards against a concurrent flip between their read and
// this write.
func (r *PgxBookingRepository) updateStatusTx(ctx context.Context, tx pgx.Tx, bookingID int64, fromSet string, set string, args []any) (*domain.Booking, error) {
	query := `UPDATE bookings SET ` + set + ` WHERE booking_id = $1 AND status IN ` + fromSet +
		` RETURNING ` + bookingColumns + `;`
	m, err := scanBooking(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing booking from a raced status change.
			current, ferr := r.findBookingBy(ctx, tx, "booking_id = $1", bookingID)
			if ferr != nil {
				return nil, ferr
			}
			return nil, fmt.Errorf("%w: booking %d is %s", apperrors.ErrInvalidState, bookingID, current.Status)
		}
		return nil, apperrors.NewAppError(500, "failed to update booking status", err)
	}
	d := mapping.ToDomainBooking(*m)
	return &d, nil
}

// ConfirmBooking flips PENDING to CONFIRMED after re-running the overlap check
// excluding the booking itself, all inside one transaction with the car locked.
// The re-check guards against two bookings created concurrently for overlapping
// dates that were both individually valid at creation time.
func (r *PgxBookingRepository) ConfirmBooking(ctx context.Context, bookingID int64, updatedAt time.Time) (*domain.Booking, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.findBookingBy(ctx, tx, "booking_id = $1", bookingID)
	if err != nil {
		return nil, err
	}

	if _, lockErr := tx.Exec(ctx, `SELECT 1 FROM cars WHERE car_id = $1 FOR UPDATE;`, current.CarID); lockErr != nil {
		return nil, apperrors.NewAppError(500, "failed to lock car row", lockErr)
	}

	conflict, err := hasConflict(ctx, tx, current.CarID, current.StartDate, current.EndDate, bookingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to re-check conflicting bookings", err)
	}
	if conflict {
		return nil, fmt.Errorf("%w: a conflicting booking exists, cannot confirm", apperrors.ErrConflict)
	}

	updated, err := r.updateStatusTx(ctx, tx, bookingID,
		`('PENDING')`,
		`status = 'CONFIRMED', updated_at = $2`,
		[]any{bookingID, updatedAt},
	)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelBooking flips an active booking to CANCELLED, recording reason and timestamp.
func (r *PgxBookingRepository) CancelBooking(ctx context.Context, bookingID int64, reason string, cancelledAt time.Time) (*domain.Booking, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updated, err := r.updateStatusTx(ctx, tx, bookingID,
		activeStatuses,
		`status = 'CANCELLED', cancelled_at = $2, cancellation_reason = $3, updated_at = $2`,
		[]any{bookingID, cancelledAt, reason},
	)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// CompleteBooking flips a CONFIRMED booking to COMPLETED.
func (r *PgxBookingRepository) CompleteBooking(ctx context.Context, bookingID int64, updatedAt time.Time) (*domain.Booking, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updated, err := r.updateStatusTx(ctx, tx, bookingID,
		`('CONFIRMED')`,
		`status = 'COMPLETED', updated_at = $2`,
		[]any{bookingID, updatedAt},
	)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PgxBookingRepository) listBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bookings", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		m, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan booking row", err)
		}
		bookings = append(bookings, mapping.ToDomainBooking(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating booking rows", err)
	}
	return bookings, nil
}

// ListBookingsByUser returns a user's bookings, newest first.
func (r *PgxBookingRepository) ListBookingsByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
}

// ListBookingsByCar returns all bookings for a car, most recent start date first.
func (r *PgxBookingRepository) ListBookingsByCar(ctx context.Context, carID int64) ([]domain.Booking, error) {
	return r.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE car_id = $1 ORDER BY start_date DESC;`, carID)
}

// ListBookingsByStatus returns a page of bookings in the given status, newest first.
func (r *PgxBookingRepository) ListBookingsByStatus(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	return r.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`,
		string(status), limit, offset)
}

// ListAllBookings returns a page of all bookings, newest first.
func (r *PgxBookingRepository) ListAllBookings(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return r.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2;`, limit, offset)
}

// ListUpcomingBookings returns CONFIRMED bookings whose start date is on or after from.
func (r *PgxBookingRepository) ListUpcomingBookings(ctx context.Context, from time.Time) ([]domain.Booking, error) {
	return r.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE status = 'CONFIRMED' AND start_date >= $1::date ORDER BY start_date;`, from)
}

// SearchBookings returns a page of bookings whose reference, locations or notes
// match the term, newest first.
func (r *PgxBookingRepository) SearchBookings(ctx context.Context, term string, limit, offset int) ([]domain.Booking, error) {
	return r.listBookings(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE booking_reference ILIKE '%' || $1 || '%'
		   OR pickup_location ILIKE '%' || $1 || '%'
		   OR dropoff_location ILIKE '%' || $1 || '%'
		   OR notes ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC LIMIT $2 OFFSET $3;`, term, limit, offset)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
