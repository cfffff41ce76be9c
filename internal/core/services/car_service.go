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
)

const (
	defaultSeats        = 4
	defaultTransmission = "Automatic"
	defaultFuelType     = "Petrol"
)

// carService manages the rental fleet catalog.
type carService struct {
	BaseService
	carRepo portsrepo.CarRepositoryFacade
}

// NewCarService creates a new car service
func NewCarService(carRepo portsrepo.CarRepositoryFacade) portssvc.CarSvcFacade {
	return &carService{carRepo: carRepo}
}

// Ensure carService implements the CarSvcFacade interface
var _ portssvc.CarSvcFacade = (*carService)(nil)

func (s *carService) CreateCar(ctx context.Context, actor domain.Actor, req dto.CreateCarRequest) (*domain.Car, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may manage the fleet", apperrors.ErrForbidden)
	}

	plate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))
	exists, err := s.carRepo.LicensePlateExists(ctx, plate, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: license plate %s is already registered", apperrors.ErrDuplicate, plate)
	}

	if !req.PricePerDay.IsPositive() {
		return nil, fmt.Errorf("%w: price per day must be positive", apperrors.ErrValidation)
	}

	status := domain.CarAvailable
	if req.Status != "" {
		status = domain.CarStatus(req.Status)
	}
	seats := defaultSeats
	if req.Seats != nil {
		seats = *req.Seats
	}
	transmission := req.Transmission
	if transmission == "" {
		transmission = defaultTransmission
	}
	fuelType := req.FuelType
	if fuelType == "" {
		fuelType = defaultFuelType
	}

	now := time.Now()
	car := &domain.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: plate,
		Color:        req.Color,
		Category:     domain.CarCategory(req.Category),
		PricePerDay:  req.PricePerDay,
		Status:       status,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Seats:        seats,
		Transmission: transmission,
		FuelType:     fuelType,
		Mileage:      req.Mileage,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.carRepo.SaveCar(ctx, car); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Car added to fleet",
		slog.Int64("car_id", car.CarID), slog.String("license_plate", car.LicensePlate))
	return car, nil
}

func (s *carService) GetCarByID(ctx context.Context, carID int64) (*domain.Car, error) {
	return s.carRepo.FindCarByID(ctx, carID)
}

func (s *carService) ListCars(ctx context.Context, filter portsrepo.CarListFilter, limit, offset int) ([]domain.Car, error) {
	return s.carRepo.ListCars(ctx, filter, limit, offset)
}

func (s *carService) SearchCars(ctx context.Context, query string, limit, offset int) ([]domain.Car, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", apperrors.ErrValidation)
	}
	return s.carRepo.SearchCars(ctx, query, limit, offset)
}

func (s *carService) ListDistinctBrands(ctx context.Context) ([]string, error) {
	return s.carRepo.ListDistinctBrands(ctx)
}

func (s *carService) UpdateCar(ctx context.Context, actor domain.Actor, carID int64, req dto.UpdateCarRequest) (*domain.Car, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may manage the fleet", apperrors.ErrForbidden)
	}

	car, err := s.carRepo.FindCarByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	if req.Brand != nil {
		car.Brand = *req.Brand
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.LicensePlate != nil {
		plate := strings.ToUpper(strings.TrimSpace(*req.LicensePlate))
		exists, err := s.carRepo.LicensePlateExists(ctx, plate, carID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: license plate %s is already registered", apperrors.ErrDuplicate, plate)
		}
		car.LicensePlate = plate
	}
	if req.Color != nil {
		car.Color = *req.Color
	}
	if req.Category != nil {
		if !domain.ValidCarCategory(*req.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, *req.Category)
		}
		car.Category = domain.CarCategory(*req.Category)
	}
	if req.PricePerDay != nil {
		if !req.PricePerDay.IsPositive() {
			return nil, fmt.Errorf("%w: price per day must be positive", apperrors.ErrValidation)
		}
		car.PricePerDay = *req.PricePerDay
	}
	if req.Description != nil {
		car.Description = *req.Description
	}
	if req.ImageURL != nil {
		car.ImageURL = *req.ImageURL
	}
	if req.Seats != nil {
		car.Seats = *req.Seats
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.FuelType != nil {
		car.FuelType = *req.FuelType
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}
	car.UpdatedAt = time.Now()

	updated, err := s.carRepo.UpdateCar(ctx, *car)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Car updated", slog.Int64("car_id", carID))
	return updated, nil
}

func (s *carService) UpdateCarStatus(ctx context.Context, actor domain.Actor, carID int64, status domain.CarStatus) (*domain.Car, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may manage the fleet", apperrors.ErrForbidden)
	}
	if !domain.ValidCarStatus(string(status)) {
		return nil, fmt.Errorf("%w: unknown car status %q", apperrors.ErrValidation, status)
	}

	// The repository refuses the change when active bookings exist and the car
	// is being taken out of service, under the same row lock booking creation takes.
	updated, err := s.carRepo.SetCarStatus(ctx, carID, status, time.Now())
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Car status changed",
		slog.Int64("car_id", carID), slog.String("status", string(status)))
	return updated, nil
}

func (s *carService) DeleteCar(ctx context.Context, actor domain.Actor, carID int64) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only admins may manage the fleet", apperrors.ErrForbidden)
	}
	if err := s.carRepo.DeleteCar(ctx, carID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Car removed from fleet", slog.Int64("car_id", carID))
	return nil
}
