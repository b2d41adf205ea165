package routes

import (
	"net/http"
	"time"

	riderRepo "hirewheels/database/repository/rider"
	"hirewheels/handlers"
	"hirewheels/middleware"
	"hirewheels/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers OTP sign-in and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, repo riderRepo.RiderRepository) {
	api := r.Group("/api/auth")
	{
		api.POST("/send-otp", handlers.SendOTPHandler)
		api.POST("/verify-otp", handlers.VerifyOTPHandler)

		// Protected routes (require authentication).
		api.Use(middleware.JWTAuthRiderMiddleware(repo))
		api.POST("/complete-profile", handlers.CompleteProfileHandler)
		api.GET("/profile", handlers.GetProfileHandler)
		api.POST("/logout", handlers.LogoutHandler)
	}
}

// RegisterCatalogRoutes registers the read-only catalog endpoints backing
// both booking steps.
func RegisterCatalogRoutes(r *gin.Engine) {
	api := r.Group("/api/catalog")
	{
		api.GET("/categories", handlers.CategoriesHandler)
		api.GET("/categories/:categoryId/subcategories", handlers.SubcategoriesHandler)
		api.GET("/subcategories/:subcategoryId/variants", handlers.SubSubcategoriesHandler)
		api.GET("/vehicle-types", handlers.VehicleTypesHandler)
		api.GET("/vehicle-types/:vehicleTypeId/vehicles", handlers.VehiclesHandler)
		api.GET("/car-categories", handlers.CarCategoriesHandler)
		api.GET("/parcel-categories", handlers.ParcelCategoriesHandler)
	}
}

// RegisterDraftRoutes registers the booking draft endpoints. The draft
// endpoints work for anonymous devices; submission requires a signed-in
// rider.
func RegisterDraftRoutes(r *gin.Engine, repo riderRepo.RiderRepository) {
	api := r.Group("/api/draft")
	{
		api.Use(middleware.OptionalJWTAuthRiderMiddleware(repo))
		api.POST("", handlers.CreateDraftHandler)
		api.GET("", handlers.GetDraftHandler)
		api.POST("/events", handlers.ApplyEventHandler)
		api.GET("/usage/presets", handlers.UsagePresetsHandler)
		api.POST("/back", handlers.BackHandler)

		api.POST("/submit", middleware.JWTAuthRiderMiddleware(repo), handlers.SubmitHandler)
	}
}

// RegisterWalletRoutes registers wallet endpoints.
func RegisterWalletRoutes(r *gin.Engine, repo riderRepo.RiderRepository) {
	api := r.Group("/api/wallet")
	{
		api.Use(middleware.JWTAuthRiderMiddleware(repo))
		api.GET("/balance", handlers.WalletBalanceHandler)
		api.POST("/topup", handlers.TopUpWalletHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm HireWheels",
			"deps":    utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, repo riderRepo.RiderRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	// The health route is registered before the device middleware so probes
	// don't need device headers.
	RegisterHealthRoute(r)
	r.Use(middleware.DeviceDetailsMiddleware())

	RegisterAuthRoutes(r, repo)
	RegisterCatalogRoutes(r)
	RegisterDraftRoutes(r, repo)
	RegisterWalletRoutes(r, repo)
}
