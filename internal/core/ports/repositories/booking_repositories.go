package repositories

import (
	"context"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
)

// BookingReader defines read operations for booking data.
type BookingReader interface {
	// FindBookingByID retrieves a booking by its numeric id.
	FindBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error)

	// FindBookingByReference retrieves a booking by its customer-facing reference code.
	FindBookingByReference(ctx context.Context, reference string) (*domain.Booking, error)

	// ReferenceExists reports whether a booking reference is already taken.
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// HasConflictingBooking reports whether any PENDING or CONFIRMED booking for the car
	// overlaps the inclusive interval [start, end].
	HasConflictingBooking(ctx context.Context, carID int64, start, end time.Time) (bool, error)

	// CountActiveBookingsForCar returns the number of PENDING or CONFIRMED bookings for the car.
	CountActiveBookingsForCar(ctx context.Context, carID int64) (int64, error)

	// ListBookingsByUser returns a user's bookings, newest first.
	ListBookingsByUser(ctx context.Context, userID int64) ([]domain.Booking, error)

	// ListBookingsByCar returns all bookings for a car, most recent start date first.
	ListBookingsByCar(ctx context.Context, carID int64) ([]domain.Booking, error)

	// ListBookingsByStatus returns a page of bookings in the given status, newest first.
	ListBookingsByStatus(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)

	// ListAllBookings returns a page of all bookings, newest first.
	ListAllBookings(ctx context.Context, limit, offset int) ([]domain.Booking, error)

	// SearchBookings returns a page of bookings whose reference, locations or notes
	// match the term, case-insensitively, newest first.
	SearchBookings(ctx context.Context, term string, limit, offset int) ([]domain.Booking, error)

	// ListUpcomingBookings returns CONFIRMED bookings whose start date is on or after from.
	ListUpcomingBookings(ctx context.Context, from time.Time) ([]domain.Booking, error)
}

// BookingWriter defines write operations for booking data. Every write that
// alters which intervals occupy a car runs atomically: the implementation
// serializes writes per car (row lock on the car) so the overlap check and
// the insert/update cannot interleave with another writer for the same car.
type BookingWriter interface {
	// CreateBooking verifies the car is bookable and the interval free, then inserts the
	// booking in PENDING, all within one transaction. On success booking.BookingID is set.
	// Returns ErrNotFound if the car is absent, ErrConflict if the car is not bookable or
	// an active booking overlaps.
	CreateBooking(ctx context.Context, booking *domain.Booking) error

	// ConfirmBooking flips a PENDING booking to CONFIRMED after re-running the overlap
	// check excluding the booking itself. Returns ErrInvalidState if the booking is no
	// longer PENDING, ErrConflict if a conflicting booking appeared since creation.
	ConfirmBooking(ctx context.Context, bookingID int64, updatedAt time.Time) (*domain.Booking, error)

	// CancelBooking flips an active booking to CANCELLED, recording the reason and
	// timestamp. Returns ErrInvalidState if the booking is already terminal.
	CancelBooking(ctx context.Context, bookingID int64, reason string, cancelledAt time.Time) (*domain.Booking, error)

	// CompleteBooking flips a CONFIRMED booking to COMPLETED.
	// Returns ErrInvalidState if the booking is not CONFIRMED.
	CompleteBooking(ctx context.Context, bookingID int64, updatedAt time.Time) (*domain.Booking, error)
}

// BookingRepositoryFacade combines all booking-related repository interfaces.
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}
