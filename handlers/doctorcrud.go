// File: medibook/handlers/doctorcrud.go
package handlers

import (
	"errors"
	"net/http"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/services/directory"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterDoctorHandler handles POST /api/doctors/register.
func (h *DoctorHandler) RegisterDoctorHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.DoctorRegistrationData
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid doctor registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doctor, err := h.Service.RegisterDoctor(c.Request.Context(), req)
	if err != nil {
		var dupErr directory.DuplicateEmailError
		if errors.As(err, &dupErr) {
			c.JSON(http.StatusConflict, gin.H{"error": dupErr.Error()})
			return
		}
		var fieldErr directory.InvalidFieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Error()})
			return
		}
		logger.Error("Doctor registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register doctor"})
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// GetDoctorByIDHandler handles GET /api/doctors/id/:id.
func (h *DoctorHandler) GetDoctorByIDHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	doctor, err := h.Service.GetDoctor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		logger.Error("Failed to fetch doctor", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch doctor"})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// GetAllDoctorsHandler handles GET /api/doctors.
func (h *DoctorHandler) GetAllDoctorsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	doctors, err := h.Service.GetAllDoctors(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

// UpdateDoctorHandler handles PATCH /api/doctors/update/:id.
func (h *DoctorHandler) UpdateDoctorHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var updates map[string]interface{}
	if err := c.BindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Remove the id field if provided in the payload.
	delete(updates, "id")

	updated, err := h.Service.UpdateDoctor(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		var fieldErr directory.InvalidFieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Error()})
			return
		}
		logger.Error("Failed to update doctor", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update doctor: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Doctor updated successfully",
		"data":    updated,
	})
}

// DeleteDoctorHandler handles DELETE /api/doctors/delete/:id.
func (h *DoctorHandler) DeleteDoctorHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if err := h.Service.DeleteDoctor(c.Request.Context(), id); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		logger.Error("Failed to delete doctor", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete doctor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}
