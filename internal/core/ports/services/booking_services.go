package services

import (
	"context"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	"github.com/driveluxe/car_rental_backend/internal/dto"
)

// BookingSvcFacade is the reservation ledger: it owns the authoritative set of
// bookings, enforces the per-car no-overlap invariant, and drives the booking
// state machine. Every operation takes the acting identity explicitly.
type BookingSvcFacade interface {
	// CreateBooking creates a booking in PENDING for the actor, snapshotting the car's
	// current price per day onto the booking.
	CreateBooking(ctx context.Context, actor domain.Actor, req dto.CreateBookingRequest) (*domain.Booking, error)

	// ConfirmBooking flips a PENDING booking to CONFIRMED (admin only), re-verifying
	// the overlap condition excluding the booking itself.
	ConfirmBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error)

	// CancelBooking cancels an active booking. The owner may cancel only before the
	// rental start date; an admin may cancel at any time.
	CancelBooking(ctx context.Context, actor domain.Actor, bookingID int64, reason string) (*domain.Booking, error)

	// CompleteBooking flips a CONFIRMED booking to COMPLETED (admin only).
	CompleteBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error)

	// GetBookingByID returns the booking if the actor owns it or is an admin.
	GetBookingByID(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error)

	// GetBookingByReference returns the booking if the actor owns it or is an admin.
	GetBookingByReference(ctx context.Context, actor domain.Actor, reference string) (*domain.Booking, error)

	// ListMyBookings returns the actor's bookings, newest first.
	ListMyBookings(ctx context.Context, actor domain.Actor) ([]domain.Booking, error)

	// ListBookingsForCar returns all bookings for a car (admin only).
	ListBookingsForCar(ctx context.Context, actor domain.Actor, carID int64) ([]domain.Booking, error)

	// ListBookingsByStatus returns a page of bookings in the given status (admin only).
	ListBookingsByStatus(ctx context.Context, actor domain.Actor, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)

	// ListAllBookings returns a page of all bookings (admin only).
	ListAllBookings(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.Booking, error)

	// SearchBookings returns a page of bookings whose reference, locations or notes
	// match the term (admin only).
	SearchBookings(ctx context.Context, actor domain.Actor, term string, limit, offset int) ([]domain.Booking, error)

	// ListUpcomingBookings returns CONFIRMED bookings starting on or after from (admin only).
	ListUpcomingBookings(ctx context.Context, actor domain.Actor, from time.Time) ([]domain.Booking, error)
}
