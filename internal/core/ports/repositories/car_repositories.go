package repositories

import (
	"context"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
)

// CarListFilter narrows ListCars results. Nil fields match everything.
type CarListFilter struct {
	Status   *domain.CarStatus
	Category *domain.CarCategory
}

// CarReader defines read operations for the car catalog.
type CarReader interface {
	// FindCarByID retrieves a car by id.
	FindCarByID(ctx context.Context, carID int64) (*domain.Car, error)

	// LicensePlateExists reports whether a car with the given plate exists,
	// excluding excludeCarID (pass 0 to exclude nothing).
	LicensePlateExists(ctx context.Context, licensePlate string, excludeCarID int64) (bool, error)

	// ListCars returns a page of cars matching the filter, newest first.
	ListCars(ctx context.Context, filter CarListFilter, limit, offset int) ([]domain.Car, error)

	// SearchCars returns a page of cars whose brand or model matches the term, case-insensitively.
	SearchCars(ctx context.Context, term string, limit, offset int) ([]domain.Car, error)

	// ListAvailableCarsForDateRange returns AVAILABLE cars with no PENDING or CONFIRMED
	// booking overlapping [start, end], optionally restricted to a category. The query is
	// a set difference over interval overlaps, not a day-by-day scan.
	ListAvailableCarsForDateRange(ctx context.Context, start, end time.Time, category *domain.CarCategory) ([]domain.Car, error)

	// ListDistinctBrands returns the distinct brands in the fleet, sorted.
	ListDistinctBrands(ctx context.Context) ([]string, error)
}

// CarWriter defines write operations for the car catalog.
type CarWriter interface {
	// SaveCar inserts a new car. On success car.CarID is set.
	// Returns ErrDuplicate if the license plate is taken.
	SaveCar(ctx context.Context, car *domain.Car) error

	// UpdateCar persists the mutable fields of an existing car.
	UpdateCar(ctx context.Context, car domain.Car) (*domain.Car, error)

	// SetCarStatus changes the car's status. A transition away from AVAILABLE is refused
	// with ErrConflict while PENDING or CONFIRMED bookings exist for the car; the check
	// and the update are atomic with respect to booking writes for the same car.
	SetCarStatus(ctx context.Context, carID int64, status domain.CarStatus, updatedAt time.Time) (*domain.Car, error)

	// DeleteCar removes a car from the catalog. Refused with ErrConflict while active
	// bookings exist, under the same atomicity as SetCarStatus.
	DeleteCar(ctx context.Context, carID int64) error
}

// CarRepositoryFacade combines all car-related repository interfaces.
type CarRepositoryFacade interface {
	CarReader
	CarWriter
}
