package services

import (
	"context"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
)

// AvailabilitySvcFacade answers availability queries by composing the car
// catalog's status with the ledger's active bookings.
type AvailabilitySvcFacade interface {
	// IsCarAvailable reports whether the car is bookable and has no active booking
	// overlapping [start, end]. Returns ErrNotFound if the car does not exist.
	IsCarAvailable(ctx context.Context, carID int64, start, end time.Time) (bool, error)

	// AvailableCars returns the bookable cars with zero active bookings overlapping
	// [start, end], optionally restricted to a category.
	AvailableCars(ctx context.Context, start, end time.Time, category *domain.CarCategory) ([]domain.Car, error)
}
