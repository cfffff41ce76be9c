package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
	"github.com/driveluxe/car_rental_backend/internal/middleware"
	"github.com/driveluxe/car_rental_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: authentication plus catalog and availability reads
	registerAuthRoutes(r, cfg, services.Auth)
	registerPublicCarRoutes(r, services.Car, services.Availability)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to
// specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.Auth)
	registerBookingRoutes(v1, services.Booking)
	registerAdminCarRoutes(v1, services.Car)
}
