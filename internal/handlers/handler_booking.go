package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
	"github.com/driveluxe/car_rental_backend/internal/core/services"
	"github.com/driveluxe/car_rental_backend/internal/dto"
	"github.com/driveluxe/car_rental_backend/internal/middleware"
)

// bookingHandler handles HTTP requests for the booking lifecycle.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
}

func newBookingHandler(bs portssvc.BookingSvcFacade) *bookingHandler {
	return &bookingHandler{bookingService: bs}
}

// registerBookingRoutes registers routes related to bookings. The group is
// already behind the auth middleware; admin routes add the role check.
func registerBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade) {
	h := newBookingHandler(bookingService)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("/my", h.listMyBookings)
		bookings.GET("/reference/:reference", h.getBookingByReference)
		bookings.GET("/:id", h.getBooking)
		bookings.POST("/:id/cancel", h.cancelBooking)
	}

	admin := bookings.Group("", middleware.RequireAdmin())
	{
		admin.GET("", h.listAllBookings)
		admin.GET("/search", h.searchBookings)
		admin.GET("/status/:status", h.listBookingsByStatus)
		admin.GET("/car/:carID", h.listBookingsForCar)
		admin.GET("/upcoming", h.listUpcomingBookings)
		admin.POST("/:id/confirm", h.confirmBooking)
		admin.POST("/:id/complete", h.completeBooking)
	}
}

func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create booking")
		return
	}

	logger.Info("Booking created",
		slog.String("booking_reference", booking.BookingReference),
		slog.Int64("car_id", booking.CarID))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) getBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), actor, bookingID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) getBookingByReference(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	reference := c.Param("reference")

	booking, err := h.bookingService.GetBookingByReference(c.Request.Context(), actor, reference)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) cancelBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	// Body is optional: an empty body means the default reason.
	var req dto.CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), actor, bookingID, req.Reason)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) confirmBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), actor, bookingID)
	if err != nil {
		respondServiceError(c, err, "Failed to confirm booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) completeBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.CompleteBooking(c.Request.Context(), actor, bookingID)
	if err != nil {
		respondServiceError(c, err, "Failed to complete booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) listMyBookings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListMyBookings(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": dto.ToBookingResponses(bookings)})
}

func (h *bookingHandler) listAllBookings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	bookings, err := h.bookingService.ListAllBookings(c.Request.Context(), actor, limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": dto.ToBookingResponses(bookings)})
}

func (h *bookingHandler) searchBookings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	bookings, err := h.bookingService.SearchBookings(c.Request.Context(), actor, c.Query("q"), limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to search bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": dto.ToBookingResponses(bookings)})
}

func (h *bookingHandler) listBookingsByStatus(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	status := domain.BookingStatus(c.Param("status"))
	if !domain.ValidBookingStatus(string(status)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown booking status: " + string(status)})
		return
	}
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	bookings, err := h.bookingService.ListBookingsByStatus(c.Request.Context(), actor, status, limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": dto.ToBookingResponses(bookings)})
}

func (h *bookingHandler) listBookingsForCar(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	carID, ok := pathID(c, "carID")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListBookingsForCar(c.Request.Context(), actor, carID)
	if err != nil {
		respondServiceError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": dto.ToBookingResponses(bookings)})
}

func (h *bookingHandler) listUpcomingBookings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("from"); raw != "" {
		parsed, err := services.ParseBookingDate(raw)
		if err != nil {
			respondServiceError(c, err, "Failed to list bookings")
			return
		}
		from = parsed
	}

	bookings, err := h.bookingService.ListUpcomingBookings(c.Request.Context(), actor, from)
	if err != nil {
		respondServiceError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": dto.ToBookingResponses(bookings)})
}
