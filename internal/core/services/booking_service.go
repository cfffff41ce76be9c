package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/apperrors"
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
	"github.com/driveluxe/car_rental_backend/internal/dto"
	"github.com/driveluxe/car_rental_backend/internal/utils"
)

const (
	// referenceLength is the code length drawn first; referenceFallbackLength widens the
	// code space after referenceWidenAfter collisions (astronomically rare in practice).
	// referenceMaxAttempts bounds the loop so a broken uniqueness check cannot spin.
	referenceLength         = 8
	referenceFallbackLength = 12
	referenceWidenAfter     = 5
	referenceMaxAttempts    = 10
	referencePrefix         = "BK"

	defaultCancellationReason = "Cancelled by user"
)

var (
	ErrBookingStarted = fmt.Errorf("%w: rental has already started, contact support to cancel", apperrors.ErrValidation)
	ErrDatesRequired  = fmt.Errorf("%w: start date and end date are required", apperrors.ErrValidation)
	ErrEndBeforeStart = fmt.Errorf("%w: end date must be on or after start date", apperrors.ErrValidation)
	ErrStartInPast    = fmt.Errorf("%w: start date cannot be in the past", apperrors.ErrValidation)
)

// bookingService is the reservation ledger. It owns the booking lifecycle and
// delegates interval-atomicity to the repository, which serializes writes per car.
type bookingService struct {
	BaseService
	bookingRepo portsrepo.BookingRepositoryFacade
	carRepo     portsrepo.CarReader
	notifier    portssvc.BookingNotifier
}

// NewBookingService creates a new booking service. notifier may be nil.
func NewBookingService(bookingRepo portsrepo.BookingRepositoryFacade, carRepo portsrepo.CarReader, notifier portssvc.BookingNotifier) portssvc.BookingSvcFacade {
	return &bookingService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		notifier:    notifier,
	}
}

// Ensure bookingService implements the BookingSvcFacade interface
var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// ParseBookingDate parses a wire-format date into a UTC calendar date.
func ParseBookingDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrDatesRequired
	}
	t, err := time.Parse(dto.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	return t.UTC(), nil
}

// today returns the current UTC calendar date at midnight.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// validateDateRange enforces end >= start and start not in the past.
func validateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	if start.Before(today()) {
		return ErrStartInPast
	}
	return nil
}

func (s *bookingService) CreateBooking(ctx context.Context, actor domain.Actor, req dto.CreateBookingRequest) (*domain.Booking, error) {
	start, err := ParseBookingDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseBookingDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	car, err := s.carRepo.FindCarByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	if !car.IsBookable() {
		return nil, fmt.Errorf("%w: car %d is not available for booking (status %s)",
			apperrors.ErrConflict, car.CarID, car.Status)
	}

	reference, err := s.generateReference(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	totalDays := domain.TotalDaysFor(start, end)
	booking := &domain.Booking{
		BookingReference: reference,
		UserID:           actor.UserID,
		CarID:            car.CarID,
		StartDate:        start,
		EndDate:          end,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		PricePerDay:      car.PricePerDay,
		TotalDays:        totalDays,
		TotalPrice:       domain.TotalPriceFor(car.PricePerDay, totalDays),
		Status:           domain.BookingPending,
		Notes:            req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	// The repository re-verifies car status and the overlap condition under a
	// per-car row lock; the insert and the check are one transaction.
	if err := s.bookingRepo.CreateBooking(ctx, booking); err != nil {
		s.LogWarn(ctx, "Booking creation rejected",
			slog.Int64("car_id", req.CarID), slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Booking created",
		slog.String("booking_reference", booking.BookingReference),
		slog.Int64("car_id", booking.CarID))

	if s.notifier != nil {
		_ = s.notifier.BookingCreated(ctx, *booking)
	}
	return booking, nil
}

// generateReference draws a random reference and retries on collision, widening
// the code space after repeated collisions. The loop is bounded: exhausting it
// means the uniqueness check itself is broken, not that the space ran out.
func (s *bookingService) generateReference(ctx context.Context) (string, error) {
	length := referenceLength
	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		if attempt >= referenceWidenAfter {
			length = referenceFallbackLength
		}
		code, err := utils.GenerateReferenceCode(length)
		if err != nil {
			return "", apperrors.NewAppError(500, "failed to generate booking reference", err)
		}
		reference := referencePrefix + code
		taken, err := s.bookingRepo.ReferenceExists(ctx, reference)
		if err != nil {
			return "", err
		}
		if !taken {
			return reference, nil
		}
	}
	return "", apperrors.NewAppError(500, "failed to generate a unique booking reference",
		fmt.Errorf("exhausted %d attempts", referenceMaxAttempts))
}

func (s *bookingService) ConfirmBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may confirm bookings", apperrors.ErrForbidden)
	}

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.Transition(booking.Status, domain.EventConfirm); err != nil {
		return nil, err
	}

	// The repository re-runs the overlap check excluding this booking before the
	// flip: the last gate against a pair of racing creations.
	updated, err := s.bookingRepo.ConfirmBooking(ctx, bookingID, time.Now())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Booking confirmed", slog.String("booking_reference", updated.BookingReference))
	if s.notifier != nil {
		_ = s.notifier.BookingConfirmed(ctx, *updated)
	}
	return updated, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID int64, reason string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: not authorized to cancel this booking", apperrors.ErrForbidden)
	}
	if _, err := domain.Transition(booking.Status, domain.EventCancel); err != nil {
		return nil, err
	}
	// Owners cannot cancel once the rental has begun; admins can.
	if !actor.IsAdmin() && !booking.StartDate.After(today()) {
		return nil, ErrBookingStarted
	}

	if reason == "" {
		reason = defaultCancellationReason
	}
	updated, err := s.bookingRepo.CancelBooking(ctx, bookingID, reason, time.Now())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Booking cancelled",
		slog.String("booking_reference", updated.BookingReference),
		slog.Int64("actor_id", actor.UserID))
	if s.notifier != nil {
		_ = s.notifier.BookingCancelled(ctx, *updated, reason)
	}
	return updated, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may complete bookings", apperrors.ErrForbidden)
	}

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.Transition(booking.Status, domain.EventComplete); err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.CompleteBooking(ctx, bookingID, time.Now())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Booking completed", slog.String("booking_reference", updated.BookingReference))
	if s.notifier != nil {
		_ = s.notifier.BookingCompleted(ctx, *updated)
	}
	return updated, nil
}

// authorizeView enforces the owner-or-admin read rule.
func authorizeView(actor domain.Actor, booking *domain.Booking) error {
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return fmt.Errorf("%w: not authorized to view this booking", apperrors.ErrForbidden)
	}
	return nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(actor, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBookingByReference(ctx context.Context, actor domain.Actor, reference string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(actor, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	return s.bookingRepo.ListBookingsByUser(ctx, actor.UserID)
}

func (s *bookingService) ListBookingsForCar(ctx context.Context, actor domain.Actor, carID int64) ([]domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.bookingRepo.ListBookingsByCar(ctx, carID)
}

func (s *bookingService) ListBookingsByStatus(ctx context.Context, actor domain.Actor, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.bookingRepo.ListBookingsByStatus(ctx, status, limit, offset)
}

func (s *bookingService) ListAllBookings(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.bookingRepo.ListAllBookings(ctx, limit, offset)
}

func (s *bookingService) ListUpcomingBookings(ctx context.Context, actor domain.Actor, from time.Time) ([]domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.bookingRepo.ListUpcomingBookings(ctx, from)
}

func (s *bookingService) SearchBookings(ctx context.Context, actor domain.Actor, term string, limit, offset int) ([]domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", apperrors.ErrValidation)
	}
	return s.bookingRepo.SearchBookings(ctx, term, limit, offset)
}
