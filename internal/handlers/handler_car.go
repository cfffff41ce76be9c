package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
	"github.com/driveluxe/car_rental_backend/internal/core/services"
	"github.com/driveluxe/car_rental_backend/internal/dto"
	"github.com/driveluxe/car_rental_backend/internal/middleware"
)

// carHandler handles HTTP requests for the car catalog and availability.
type carHandler struct {
	carService          portssvc.CarSvcFacade
	availabilityService portssvc.AvailabilitySvcFacade
}

func newCarHandler(cs portssvc.CarSvcFacade, as portssvc.AvailabilitySvcFacade) *carHandler {
	return &carHandler{carService: cs, availabilityService: as}
}

// registerPublicCarRoutes registers the unauthenticated catalog and
// availability reads.
func registerPublicCarRoutes(r *gin.Engine, carService portssvc.CarSvcFacade, availabilityService portssvc.AvailabilitySvcFacade) {
	h := newCarHandler(carService, availabilityService)

	cars := r.Group("/api/v1/cars")
	{
		cars.GET("", h.listCars)
		cars.GET("/search", h.searchCars)
		cars.GET("/brands", h.listBrands)
		cars.GET("/available", h.listAvailableCars)
		cars.GET("/:id", h.getCar)
		cars.GET("/:id/availability", h.checkCarAvailability)
	}
}

// registerAdminCarRoutes registers the fleet mutations. The group is already
// behind the auth middleware; the role check is added here.
func registerAdminCarRoutes(rg *gin.RouterGroup, carService portssvc.CarSvcFacade) {
	h := newCarHandler(carService, nil)

	cars := rg.Group("/cars", middleware.RequireAdmin())
	{
		cars.POST("", h.createCar)
		cars.PUT("/:id", h.updateCar)
		cars.PATCH("/:id/status", h.updateCarStatus)
		cars.DELETE("/:id", h.deleteCar)
	}
}

// dateRangeQuery parses the start/end query parameters shared by the
// availability endpoints.
func dateRangeQuery(c *gin.Context) (start, end time.Time, ok bool) {
	start, err := services.ParseBookingDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	end, err = services.ParseBookingDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *carHandler) listCars(c *gin.Context) {
	filter := portsrepo.CarListFilter{}
	if raw := c.Query("status"); raw != "" {
		if !domain.ValidCarStatus(raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown car status: " + raw})
			return
		}
		status := domain.CarStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		if !domain.ValidCarCategory(raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown car category: " + raw})
			return
		}
		category := domain.CarCategory(raw)
		filter.Category = &category
	}
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	cars, err := h.carService.ListCars(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list cars")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": dto.ToCarResponses(cars)})
}

func (h *carHandler) searchCars(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	cars, err := h.carService.SearchCars(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to search cars")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": dto.ToCarResponses(cars)})
}

func (h *carHandler) listBrands(c *gin.Context) {
	brands, err := h.carService.ListDistinctBrands(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list brands")
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *carHandler) getCar(c *gin.Context) {
	carID, ok := pathID(c, "id")
	if !ok {
		return
	}

	car, err := h.carService.GetCarByID(c.Request.Context(), carID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve car")
		return
	}
	c.JSON(http.StatusOK, dto.ToCarResponse(car))
}

func (h *carHandler) checkCarAvailability(c *gin.Context) {
	carID, ok := pathID(c, "id")
	if !ok {
		return
	}
	start, end, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	available, err := h.availabilityService.IsCarAvailable(c.Request.Context(), carID, start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to check availability")
		return
	}

	c.JSON(http.StatusOK, dto.CarAvailabilityResponse{
		CarID:     carID,
		StartDate: start.Format(dto.DateFormat),
		EndDate:   end.Format(dto.DateFormat),
		Available: available,
	})
}

func (h *carHandler) listAvailableCars(c *gin.Context) {
	start, end, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	var category *domain.CarCategory
	if raw := c.Query("category"); raw != "" {
		if !domain.ValidCarCategory(raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown car category: " + raw})
			return
		}
		cat := domain.CarCategory(raw)
		category = &cat
	}

	cars, err := h.availabilityService.AvailableCars(c.Request.Context(), start, end, category)
	if err != nil {
		respondServiceError(c, err, "Failed to list available cars")
		return
	}

	resp := dto.AvailableCarsResponse{
		StartDate: start.Format(dto.DateFormat),
		EndDate:   end.Format(dto.DateFormat),
		Cars:      dto.ToCarResponses(cars),
	}
	if category != nil {
		resp.Category = string(*category)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *carHandler) createCar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCar", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	car, err := h.carService.CreateCar(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create car")
		return
	}

	logger.Info("Car created", slog.Int64("car_id", car.CarID))
	c.JSON(http.StatusCreated, dto.ToCarResponse(car))
}

func (h *carHandler) updateCar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	carID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCar", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	car, err := h.carService.UpdateCar(c.Request.Context(), actor, carID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update car")
		return
	}
	c.JSON(http.StatusOK, dto.ToCarResponse(car))
}

func (h *carHandler) updateCarStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	carID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCarStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCarStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	car, err := h.carService.UpdateCarStatus(c.Request.Context(), actor, carID, domain.CarStatus(req.Status))
	if err != nil {
		respondServiceError(c, err, "Failed to update car status")
		return
	}
	c.JSON(http.StatusOK, dto.ToCarResponse(car))
}

func (h *carHandler) deleteCar(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	carID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), actor, carID); err != nil {
		respondServiceError(c, err, "Failed to delete car")
		return
	}
	c.Status(http.StatusNoContent)
}
