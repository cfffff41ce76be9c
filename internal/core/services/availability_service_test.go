package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/driveluxe/car_rental_backend/internal/apperrors"
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
	"github.com/driveluxe/car_rental_backend/internal/core/services"
)

type AvailabilityServiceTestSuite struct {
	suite.Suite
	mockBookingRepo *MockBookingRepository
	mockCarRepo     *MockCarRepository
	service         portssvc.AvailabilitySvcFacade

	car   domain.Car
	start time.Time
	end   time.Time
}

func (suite *AvailabilityServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockCarRepo = new(MockCarRepository)
	suite.service = services.NewAvailabilityService(suite.mockBookingRepo, suite.mockCarRepo)

	suite.car = domain.Car{CarID: 42, Status: domain.CarAvailable}
	suite.start = time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	suite.end = suite.start.AddDate(0, 0, 4)
}

func (suite *AvailabilityServiceTestSuite) TestIsCarAvailable_Free() {
	ctx := context.Background()

	suite.mockCarRepo.On("FindCarByID", ctx, suite.car.CarID).Return(&suite.car, nil).Once()
	suite.mockBookingRepo.On("HasConflictingBooking", ctx, suite.car.CarID, suite.start, suite.end).Return(false, nil).Once()

	available, err := suite.service.IsCarAvailable(ctx, suite.car.CarID, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.True(available)
}

func (suite *AvailabilityServiceTestSuite) TestIsCarAvailable_Conflict() {
	ctx := context.Background()

	suite.mockCarRepo.On("FindCarByID", ctx, suite.car.CarID).Return(&suite.car, nil).Once()
	suite.mockBookingRepo.On("HasConflictingBooking", ctx, suite.car.CarID, suite.start, suite.end).Return(true, nil).Once()

	available, err := suite.service.IsCarAvailable(ctx, suite.car.CarID, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.False(available)
}

func (suite *AvailabilityServiceTestSuite) TestIsCarAvailable_CarInMaintenance() {
	ctx := context.Background()
	car := suite.car
	car.Status = domain.CarMaintenance

	suite.mockCarRepo.On("FindCarByID", ctx, car.CarID).Return(&car, nil).Once()

	available, err := suite.service.IsCarAvailable(ctx, car.CarID, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.False(available)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "HasConflictingBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AvailabilityServiceTestSuite) TestIsCarAvailable_CarNotFound() {
	ctx := context.Background()

	suite.mockCarRepo.On("FindCarByID", ctx, int64(999)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.IsCarAvailable(ctx, 999, suite.start, suite.end)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AvailabilityServiceTestSuite) TestIsCarAvailable_EndBeforeStart() {
	ctx := context.Background()

	_, err := suite.service.IsCarAvailable(ctx, suite.car.CarID, suite.end, suite.start)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCarRepo.AssertNotCalled(suite.T(), "FindCarByID", mock.Anything, mock.Anything)
}

func (suite *AvailabilityServiceTestSuite) TestAvailableCars() {
	ctx := context.Background()
	category := domain.CategoryLuxury
	cars := []domain.Car{suite.car}

	suite.mockCarRepo.On("ListAvailableCarsForDateRange", ctx, suite.start, suite.end, &category).Return(cars, nil).Once()

	got, err := suite.service.AvailableCars(ctx, suite.start, suite.end, &category)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func (suite *AvailabilityServiceTestSuite) TestAvailableCars_PastStart() {
	ctx := context.Background()
	past := time.Now().UTC().AddDate(0, 0, -3)

	_, err := suite.service.AvailableCars(ctx, past, suite.end, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCarRepo.AssertNotCalled(suite.T(), "ListAvailableCarsForDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailabilityService(t *testing.T) {
	suite.Run(t, new(AvailabilityServiceTestSuite))
}
