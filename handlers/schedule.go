// File: medibook/handlers/schedule.go
package handlers

import (
	"errors"
	"net/http"

	doctorRepo "medibook/database/repository/doctor"
	scheduleRepo "medibook/database/repository/schedule"
	"medibook/models"
	"medibook/services/schedule"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ScheduleHandler exposes availability management and slot transitions.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// SetupAvailabilityHandler handles PUT /api/doctors/:id/availability.
func (h *ScheduleHandler) SetupAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doctorID := c.Param("id")

	var req models.SetupAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid availability setup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	dto, err := h.Service.SetupAvailability(c.Request.Context(), doctorID, req)
	if err != nil {
		var slotErr schedule.SlotValidationError
		if errors.As(err, &slotErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": slotErr.Error()})
			return
		}
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		logger.Error("Failed to set up availability", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set up availability", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Availability setup successful",
		"schedule": dto,
	})
}

// GetAvailabilityHandler handles GET /api/doctors/:id/availability.
func (h *ScheduleHandler) GetAvailabilityHandler(c *gin.Context) {
	doctorID := c.Param("id")

	slots, err := h.Service.GetAvailability(c.Request.Context(), doctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctorId": doctorID, "slots": slots})
}

// BookSlotHandler handles POST /api/doctors/:id/availability/:slotId/book.
func (h *ScheduleHandler) BookSlotHandler(c *gin.Context) {
	doctorID := c.Param("id")
	slotID := c.Param("slotId")

	bookingID, err := h.Service.BookSlot(c.Request.Context(), doctorID, slotID)
	if err != nil {
		h.respondTransitionError(c, "book slot", doctorID, slotID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Slot booked",
		"bookingId": bookingID,
	})
}

// CancelBookingHandler handles POST /api/doctors/:id/availability/:slotId/cancel.
func (h *ScheduleHandler) CancelBookingHandler(c *gin.Context) {
	doctorID := c.Param("id")
	slotID := c.Param("slotId")

	if err := h.Service.CancelBooking(c.Request.Context(), doctorID, slotID); err != nil {
		h.respondTransitionError(c, "cancel booking", doctorID, slotID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled, slot reopened"})
}

// BlockSlotHandler handles POST /api/doctors/:id/availability/:slotId/block.
// The request body may carry an optional reason.
func (h *ScheduleHandler) BlockSlotHandler(c *gin.Context) {
	doctorID := c.Param("id")
	slotID := c.Param("slotId")

	var body struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	if err := h.Service.BlockSlot(c.Request.Context(), doctorID, slotID, body.Reason); err != nil {
		h.respondTransitionError(c, "block slot", doctorID, slotID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Slot blocked"})
}

// UnblockSlotHandler handles POST /api/doctors/:id/availability/:slotId/unblock.
func (h *ScheduleHandler) UnblockSlotHandler(c *gin.Context) {
	doctorID := c.Param("id")
	slotID := c.Param("slotId")

	if err := h.Service.UnblockSlot(c.Request.Context(), doctorID, slotID); err != nil {
		h.respondTransitionError(c, "unblock slot", doctorID, slotID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Slot unblocked"})
}

// respondTransitionError maps slot transition failures onto HTTP statuses.
func (h *ScheduleHandler) respondTransitionError(c *gin.Context, op, doctorID, slotID string, err error) {
	logger := utils.GetLogger()

	var stateErr schedule.SlotStateError
	if errors.As(err, &stateErr) {
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
		return
	}
	if errors.Is(err, utils.ErrLockNotAcquired) {
		c.JSON(http.StatusConflict, gin.H{"error": "Slot is being modified, try again shortly"})
		return
	}
	if errors.Is(err, scheduleRepo.ErrSlotStateChanged) {
		c.JSON(http.StatusConflict, gin.H{"error": "Slot changed state concurrently, try again"})
		return
	}
	if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
		return
	}
	if errors.Is(err, doctorRepo.ErrDoctorNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	logger.Error("Slot transition failed",
		zap.String("op", op),
		zap.String("doctorID", doctorID),
		zap.String("slotID", slotID),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op, "message": err.Error()})
}
