package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/driveluxe/car_rental_backend/internal/apperrors"
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
	"github.com/driveluxe/car_rental_backend/internal/core/services"
	"github.com/driveluxe/car_rental_backend/internal/dto"
)

// --- Test Suite Setup ---

type BookingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo *MockBookingRepository
	mockCarRepo     *MockCarRepository
	mockNotifier    *MockNotifier
	service         portssvc.BookingSvcFacade

	customer domain.Actor
	admin    domain.Actor
	car      domain.Car
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockCarRepo = new(MockCarRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewBookingService(suite.mockBookingRepo, suite.mockCarRepo, suite.mockNotifier)

	suite.customer = domain.Actor{UserID: 7, Role: domain.RoleCustomer}
	suite.admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	suite.car = domain.Car{
		CarID:       42,
		Brand:       "BMW",
		Model:       "7 Series",
		PricePerDay: decimal.RequireFromString("599.99"),
		Status:      domain.CarAvailable,
	}
}

// futureDate formats a date n days from now in the wire format.
func futureDate(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format(dto.DateFormat)
}

// --- CreateBooking ---

func (suite *BookingServiceTestSuite) TestCreateBooking_Success() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{
		CarID:     suite.car.CarID,
		StartDate: futureDate(10),
		EndDate:   futureDate(14),
	}

	suite.mockCarRepo.On("FindCarByID", ctx, suite.car.CarID).Return(&suite.car, nil).Once()
	suite.mockBookingRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockBookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Booking).BookingID = 1001
		}).Return(nil).Once()
	suite.mockNotifier.On("BookingCreated", ctx, mock.AnythingOfType("domain.Booking")).Return(nil).Once()

	booking, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.Equal(int64(1001), booking.BookingID)
	suite.Equal(suite.customer.UserID, booking.UserID)
	suite.Equal(domain.BookingPending, booking.Status)
	suite.True(strings.HasPrefix(booking.BookingReference, "BK"))
	suite.Len(booking.BookingReference, 10)
	suite.Equal(5, booking.TotalDays)
	suite.True(booking.PricePerDay.Equal(decimal.RequireFromString("599.99")))
	suite.True(booking.TotalPrice.Equal(decimal.RequireFromString("2999.95")), "got %s", booking.TotalPrice)

	suite.mockCarRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_CarNotFound() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{CarID: 999, StartDate: futureDate(1), EndDate: futureDate(2)}

	suite.mockCarRepo.On("FindCarByID", ctx, int64(999)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CreateBooking", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_CarNotBookable() {
	ctx := context.Background()
	car := suite.car
	car.Status = domain.CarMaintenance
	req := dto.CreateBookingRequest{CarID: car.CarID, StartDate: futureDate(1), EndDate: futureDate(2)}

	suite.mockCarRepo.On("FindCarByID", ctx, car.CarID).Return(&car, nil).Once()

	_, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CreateBooking", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{CarID: suite.car.CarID, StartDate: futureDate(5), EndDate: futureDate(3)}

	_, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCarRepo.AssertNotCalled(suite.T(), "FindCarByID", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_StartInPast() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{CarID: suite.car.CarID, StartDate: futureDate(-2), EndDate: futureDate(3)}

	_, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_MalformedDate() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{CarID: suite.car.CarID, StartDate: "10/03/2026", EndDate: futureDate(3)}

	_, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_OverlapConflict() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{CarID: suite.car.CarID, StartDate: futureDate(1), EndDate: futureDate(2)}

	suite.mockCarRepo.On("FindCarByID", ctx, suite.car.CarID).Return(&suite.car, nil).Once()
	suite.mockBookingRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockBookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*domain.Booking")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "BookingCreated", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_ReferenceCollisionRetries() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{CarID: suite.car.CarID, StartDate: futureDate(1), EndDate: futureDate(2)}

	suite.mockCarRepo.On("FindCarByID", ctx, suite.car.CarID).Return(&suite.car, nil).Once()
	suite.mockBookingRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()
	suite.mockBookingRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockBookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	suite.mockNotifier.On("BookingCreated", ctx, mock.AnythingOfType("domain.Booking")).Return(nil).Once()

	booking, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(booking.BookingReference, "BK"))
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_ReferenceExhaustionFails() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{CarID: suite.car.CarID, StartDate: futureDate(1), EndDate: futureDate(2)}

	suite.mockCarRepo.On("FindCarByID", ctx, suite.car.CarID).Return(&suite.car, nil).Once()
	// A uniqueness check that never clears must terminate with an error, not spin.
	suite.mockBookingRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Times(10)

	booking, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CreateBooking", mock.Anything, mock.Anything)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_NotifierFailureIsIgnored() {
	ctx := context.Background()
	req := dto.CreateBookingRequest{CarID: suite.car.CarID, StartDate: futureDate(1), EndDate: futureDate(2)}

	suite.mockCarRepo.On("FindCarByID", ctx, suite.car.CarID).Return(&suite.car, nil).Once()
	suite.mockBookingRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockBookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	suite.mockNotifier.On("BookingCreated", ctx, mock.AnythingOfType("domain.Booking")).
		Return(apperrors.ErrConflict).Once()

	booking, err := suite.service.CreateBooking(ctx, suite.customer, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
}

// --- ConfirmBooking ---

func (suite *BookingServiceTestSuite) TestConfirmBooking_Success() {
	ctx := context.Background()
	pending := &domain.Booking{BookingID: 5, BookingReference: "BKAAAA1111", Status: domain.BookingPending}
	confirmed := &domain.Booking{BookingID: 5, BookingReference: "BKAAAA1111", Status: domain.BookingConfirmed}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(5)).Return(pending, nil).Once()
	suite.mockBookingRepo.On("ConfirmBooking", ctx, int64(5), mock.AnythingOfType("time.Time")).Return(confirmed, nil).Once()
	suite.mockNotifier.On("BookingConfirmed", ctx, *confirmed).Return(nil).Once()

	got, err := suite.service.ConfirmBooking(ctx, suite.admin, 5)

	suite.Require().NoError(err)
	suite.Equal(domain.BookingConfirmed, got.Status)
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestConfirmBooking_NotAdmin() {
	ctx := context.Background()

	_, err := suite.service.ConfirmBooking(ctx, suite.customer, 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "ConfirmBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestConfirmBooking_AlreadyConfirmed() {
	ctx := context.Background()
	confirmed := &domain.Booking{BookingID: 5, Status: domain.BookingConfirmed}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(5)).Return(confirmed, nil).Once()

	_, err := suite.service.ConfirmBooking(ctx, suite.admin, 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "ConfirmBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestConfirmBooking_ConflictOnRecheck() {
	ctx := context.Background()
	pending := &domain.Booking{BookingID: 5, Status: domain.BookingPending}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(5)).Return(pending, nil).Once()
	suite.mockBookingRepo.On("ConfirmBooking", ctx, int64(5), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.ConfirmBooking(ctx, suite.admin, 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "BookingConfirmed", mock.Anything, mock.Anything)
}

// --- CancelBooking ---

func (suite *BookingServiceTestSuite) TestCancelBooking_OwnerBeforeStart() {
	ctx := context.Background()
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 3)
	active := &domain.Booking{BookingID: 8, UserID: suite.customer.UserID, Status: domain.BookingPending, StartDate: start}
	cancelled := &domain.Booking{BookingID: 8, UserID: suite.customer.UserID, Status: domain.BookingCancelled, StartDate: start}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(8)).Return(active, nil).Once()
	suite.mockBookingRepo.On("CancelBooking", ctx, int64(8), "Change of plans", mock.AnythingOfType("time.Time")).
		Return(cancelled, nil).Once()
	suite.mockNotifier.On("BookingCancelled", ctx, *cancelled, "Change of plans").Return(nil).Once()

	got, err := suite.service.CancelBooking(ctx, suite.customer, 8, "Change of plans")

	suite.Require().NoError(err)
	suite.Equal(domain.BookingCancelled, got.Status)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCancelBooking_DefaultReason() {
	ctx := context.Background()
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 3)
	active := &domain.Booking{BookingID: 8, UserID: suite.customer.UserID, Status: domain.BookingPending, StartDate: start}
	cancelled := &domain.Booking{BookingID: 8, UserID: suite.customer.UserID, Status: domain.BookingCancelled, StartDate: start}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(8)).Return(active, nil).Once()
	suite.mockBookingRepo.On("CancelBooking", ctx, int64(8), "Cancelled by user", mock.AnythingOfType("time.Time")).
		Return(cancelled, nil).Once()
	suite.mockNotifier.On("BookingCancelled", ctx, *cancelled, "Cancelled by user").Return(nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.customer, 8, "")

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCancelBooking_OwnerAfterStartRefused() {
	ctx := context.Background()
	start := time.Now().UTC().Truncate(24 * time.Hour)
	active := &domain.Booking{BookingID: 8, UserID: suite.customer.UserID, Status: domain.BookingConfirmed, StartDate: start}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(8)).Return(active, nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.customer, 8, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CancelBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCancelBooking_AdminAfterStart() {
	ctx := context.Background()
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	active := &domain.Booking{BookingID: 8, UserID: suite.customer.UserID, Status: domain.BookingConfirmed, StartDate: start}
	cancelled := &domain.Booking{BookingID: 8, UserID: suite.customer.UserID, Status: domain.BookingCancelled, StartDate: start}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(8)).Return(active, nil).Once()
	suite.mockBookingRepo.On("CancelBooking", ctx, int64(8), "No-show", mock.AnythingOfType("time.Time")).
		Return(cancelled, nil).Once()
	suite.mockNotifier.On("BookingCancelled", ctx, *cancelled, "No-show").Return(nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.admin, 8, "No-show")

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCancelBooking_NotOwner() {
	ctx := context.Background()
	active := &domain.Booking{BookingID: 8, UserID: 99, Status: domain.BookingPending}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(8)).Return(active, nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.customer, 8, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CancelBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCancelBooking_AlreadyTerminal() {
	ctx := context.Background()
	done := &domain.Booking{BookingID: 8, UserID: suite.customer.UserID, Status: domain.BookingCancelled}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(8)).Return(done, nil).Once()

	_, err := suite.service.CancelBooking(ctx, suite.customer, 8, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- CompleteBooking ---

func (suite *BookingServiceTestSuite) TestCompleteBooking_Success() {
	ctx := context.Background()
	confirmed := &domain.Booking{BookingID: 3, Status: domain.BookingConfirmed}
	completed := &domain.Booking{BookingID: 3, Status: domain.BookingCompleted}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(3)).Return(confirmed, nil).Once()
	suite.mockBookingRepo.On("CompleteBooking", ctx, int64(3), mock.AnythingOfType("time.Time")).Return(completed, nil).Once()
	suite.mockNotifier.On("BookingCompleted", ctx, *completed).Return(nil).Once()

	got, err := suite.service.CompleteBooking(ctx, suite.admin, 3)

	suite.Require().NoError(err)
	suite.Equal(domain.BookingCompleted, got.Status)
}

func (suite *BookingServiceTestSuite) TestCompleteBooking_NotAdmin() {
	ctx := context.Background()

	_, err := suite.service.CompleteBooking(ctx, suite.customer, 3)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BookingServiceTestSuite) TestCompleteBooking_NotConfirmed() {
	ctx := context.Background()
	pending := &domain.Booking{BookingID: 3, Status: domain.BookingPending}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(3)).Return(pending, nil).Once()

	_, err := suite.service.CompleteBooking(ctx, suite.admin, 3)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CompleteBooking", mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *BookingServiceTestSuite) TestGetBookingByID_Owner() {
	ctx := context.Background()
	booking := &domain.Booking{BookingID: 2, UserID: suite.customer.UserID}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(2)).Return(booking, nil).Once()

	got, err := suite.service.GetBookingByID(ctx, suite.customer, 2)

	suite.Require().NoError(err)
	suite.Equal(booking, got)
}

func (suite *BookingServiceTestSuite) TestGetBookingByID_OtherUserForbidden() {
	ctx := context.Background()
	booking := &domain.Booking{BookingID: 2, UserID: 99}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(2)).Return(booking, nil).Once()

	_, err := suite.service.GetBookingByID(ctx, suite.customer, 2)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BookingServiceTestSuite) TestGetBookingByReference_Admin() {
	ctx := context.Background()
	booking := &domain.Booking{BookingID: 2, UserID: 99, BookingReference: "BKZZZZ9999"}

	suite.mockBookingRepo.On("FindBookingByReference", ctx, "BKZZZZ9999").Return(booking, nil).Once()

	got, err := suite.service.GetBookingByReference(ctx, suite.admin, "BKZZZZ9999")

	suite.Require().NoError(err)
	suite.Equal(booking, got)
}

func (suite *BookingServiceTestSuite) TestListAllBookings_NotAdmin() {
	ctx := context.Background()

	_, err := suite.service.ListAllBookings(ctx, suite.customer, 50, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "ListAllBookings", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestListMyBookings() {
	ctx := context.Background()
	bookings := []domain.Booking{{BookingID: 1, UserID: suite.customer.UserID}}

	suite.mockBookingRepo.On("ListBookingsByUser", ctx, suite.customer.UserID).Return(bookings, nil).Once()

	got, err := suite.service.ListMyBookings(ctx, suite.customer)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func (suite *BookingServiceTestSuite) TestSearchBookings_Admin() {
	ctx := context.Background()
	bookings := []domain.Booking{{BookingID: 3, BookingReference: "BKZZZZ9999"}}

	suite.mockBookingRepo.On("SearchBookings", ctx, "BKZZ", 50, 0).Return(bookings, nil).Once()

	got, err := suite.service.SearchBookings(ctx, suite.admin, " BKZZ ", 50, 0)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func (suite *BookingServiceTestSuite) TestSearchBookings_NotAdmin() {
	ctx := context.Background()

	_, err := suite.service.SearchBookings(ctx, suite.customer, "BKZZ", 50, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SearchBookings",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestSearchBookings_EmptyTerm() {
	ctx := context.Background()

	_, err := suite.service.SearchBookings(ctx, suite.admin, "   ", 50, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---

func TestBookingService(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
