package services

import (
	"context"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
)

// availabilityService answers point and set availability queries. It is
// read-only and advisory: the booking write path re-checks under lock.
type availabilityService struct {
	BaseService
	bookingRepo portsrepo.BookingReader
	carRepo     portsrepo.CarReader
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(bookingRepo portsrepo.BookingReader, carRepo portsrepo.CarReader) portssvc.AvailabilitySvcFacade {
	return &availabilityService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
	}
}

// Ensure availabilityService implements the AvailabilitySvcFacade interface
var _ portssvc.AvailabilitySvcFacade = (*availabilityService)(nil)

func (s *availabilityService) IsCarAvailable(ctx context.Context, carID int64, start, end time.Time) (bool, error) {
	if err := validateDateRange(start, end); err != nil {
		return false, err
	}

	car, err := s.carRepo.FindCarByID(ctx, carID)
	if err != nil {
		return false, err
	}
	if !car.IsBookable() {
		return false, nil
	}

	hasConflict, err := s.bookingRepo.HasConflictingBooking(ctx, carID, start, end)
	if err != nil {
		return false, err
	}
	return !hasConflict, nil
}

func (s *availabilityService) AvailableCars(ctx context.Context, start, end time.Time, category *domain.CarCategory) ([]domain.Car, error) {
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.carRepo.ListAvailableCarsForDateRange(ctx, start, end, category)
}
