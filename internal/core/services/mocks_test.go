package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
)

// --- Mock BookingRepository ---

type MockBookingRepository struct {
	mock.Mock
}

var _ portsrepo.BookingRepositoryFacade = (*MockBookingRepository)(nil)

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindBookingByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) HasConflictingBooking(ctx context.Context, carID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, carID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) CountActiveBookingsForCar(ctx context.Context, carID int64) (int64, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsByCar(ctx context.Context, carID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsByStatus(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAllBookings(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListUpcomingBookings(ctx context.Context, from time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SearchBookings(ctx context.Context, term string, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, term, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) ConfirmBooking(ctx context.Context, bookingID int64, updatedAt time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CancelBooking(ctx context.Context, bookingID int64, reason string, cancelledAt time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, reason, cancelledAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CompleteBooking(ctx context.Context, bookingID int64, updatedAt time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// --- Mock CarRepository ---

type MockCarRepository struct {
	mock.Mock
}

var _ portsrepo.CarRepositoryFacade = (*MockCarRepository)(nil)

func (m *MockCarRepository) FindCarByID(ctx context.Context, carID int64) (*domain.Car, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepository) LicensePlateExists(ctx context.Context, licensePlate string, excludeCarID int64) (bool, error) {
	args := m.Called(ctx, licensePlate, excludeCarID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCarRepository) ListCars(ctx context.Context, filter portsrepo.CarListFilter, limit, offset int) ([]domain.Car, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

func (m *MockCarRepository) SearchCars(ctx context.Context, term string, limit, offset int) ([]domain.Car, error) {
	args := m.Called(ctx, term, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

func (m *MockCarRepository) ListAvailableCarsForDateRange(ctx context.Context, start, end time.Time, category *domain.CarCategory) ([]domain.Car, error) {
	args := m.Called(ctx, start, end, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

func (m *MockCarRepository) ListDistinctBrands(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCarRepository) SaveCar(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) UpdateCar(ctx context.Context, car domain.Car) (*domain.Car, error) {
	args := m.Called(ctx, car)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepository) SetCarStatus(ctx context.Context, carID int64, status domain.CarStatus, updatedAt time.Time) (*domain.Car, error) {
	args := m.Called(ctx, carID, status, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepository) DeleteCar(ctx context.Context, carID int64) error {
	args := m.Called(ctx, carID)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock BookingNotifier ---

type MockNotifier struct {
	mock.Mock
}

var _ portssvc.BookingNotifier = (*MockNotifier)(nil)

func (m *MockNotifier) BookingCreated(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockNotifier) BookingCancelled(ctx context.Context, booking domain.Booking, reason string) error {
	args := m.Called(ctx, booking, reason)
	return args.Error(0)
}

func (m *MockNotifier) BookingCompleted(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
