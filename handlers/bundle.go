// File: medibook/handlers/handlerBundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Doctor endpoints
	RegisterDoctorHandler gin.HandlerFunc
	GetDoctorByIDHandler  gin.HandlerFunc
	GetAllDoctorsHandler  gin.HandlerFunc
	UpdateDoctorHandler   gin.HandlerFunc
	DeleteDoctorHandler   gin.HandlerFunc

	// Search endpoint
	SearchDoctorsHandler gin.HandlerFunc

	// Availability endpoints
	SetupAvailabilityHandler gin.HandlerFunc
	GetAvailabilityHandler   gin.HandlerFunc
	BookSlotHandler          gin.HandlerFunc
	CancelBookingHandler     gin.HandlerFunc
	BlockSlotHandler         gin.HandlerFunc
	UnblockSlotHandler       gin.HandlerFunc

	// Review endpoints
	SubmitReviewHandler gin.HandlerFunc
	ListReviewsHandler  gin.HandlerFunc
	DeleteReviewHandler gin.HandlerFunc
}
