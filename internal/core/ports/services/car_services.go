package services

import (
	"context"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	"github.com/driveluxe/car_rental_backend/internal/dto"
)

// CarSvcFacade manages the car catalog. Mutations are admin-only; reads are public.
type CarSvcFacade interface {
	// CreateCar adds a car to the fleet (admin only).
	CreateCar(ctx context.Context, actor domain.Actor, req dto.CreateCarRequest) (*domain.Car, error)

	// GetCarByID retrieves a car.
	GetCarByID(ctx context.Context, carID int64) (*domain.Car, error)

	// ListCars returns a page of cars matching the filter.
	ListCars(ctx context.Context, filter portsrepo.CarListFilter, limit, offset int) ([]domain.Car, error)

	// SearchCars returns a page of cars whose brand or model matches the term.
	SearchCars(ctx context.Context, term string, limit, offset int) ([]domain.Car, error)

	// ListDistinctBrands returns the distinct brands in the fleet.
	ListDistinctBrands(ctx context.Context) ([]string, error)

	// UpdateCar updates catalog fields of a car (admin only).
	UpdateCar(ctx context.Context, actor domain.Actor, carID int64, req dto.UpdateCarRequest) (*domain.Car, error)

	// UpdateCarStatus changes a car's status (admin only). Withdrawing the car from
	// booking is refused while active bookings exist.
	UpdateCarStatus(ctx context.Context, actor domain.Actor, carID int64, status domain.CarStatus) (*domain.Car, error)

	// DeleteCar removes a car (admin only). Refused while active bookings exist.
	DeleteCar(ctx context.Context, actor domain.Actor, carID int64) error
}
