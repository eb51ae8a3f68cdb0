package routes

import (
	"medibook/handlers"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDoctorRoutes registers doctor directory endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.POST("/register", hb.RegisterDoctorHandler)
		api.GET("", hb.GetAllDoctorsHandler)
		api.GET("/id/:id", hb.GetDoctorByIDHandler)
		api.PATCH("/update/:id", hb.UpdateDoctorHandler)
		api.DELETE("/delete/:id", hb.DeleteDoctorHandler)

		api.GET("/search", hb.SearchDoctorsHandler)
	}
}

// RegisterScheduleRoutes registers availability and slot transition endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors/:id/availability")
	{
		api.PUT("", hb.SetupAvailabilityHandler)
		api.GET("", hb.GetAvailabilityHandler)
		api.POST("/:slotId/book", hb.BookSlotHandler)
		api.POST("/:slotId/cancel", hb.CancelBookingHandler)
		api.POST("/:slotId/block", hb.BlockSlotHandler)
		api.POST("/:slotId/unblock", hb.UnblockSlotHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors/:id/reviews")
	{
		api.POST("", hb.SubmitReviewHandler)
		api.GET("", hb.ListReviewsHandler)
		api.DELETE("/:reviewId", hb.DeleteReviewHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDoctorRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r)
}
