// File: medibook/handlers/review.go
package handlers

import (
	"errors"
	"net/http"

	doctorRepo "medibook/database/repository/doctor"
	reviewRepo "medibook/database/repository/review"
	"medibook/models"
	"medibook/services/review"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes review submission and the rating recompute flow.
type ReviewHandler struct {
	Service review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// SubmitReviewHandler handles POST /api/doctors/:id/reviews.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doctorID := c.Param("id")

	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid review submission", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rev, summary, err := h.Service.SubmitReview(c.Request.Context(), doctorID, req)
	if err != nil {
		if errors.Is(err, review.ErrInvalidScore) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		logger.Error("Failed to submit review", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"review": rev,
		"rating": summary,
	})
}

// ListReviewsHandler handles GET /api/doctors/:id/reviews.
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doctorID := c.Param("id")

	reviews, err := h.Service.ListReviews(c.Request.Context(), doctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		logger.Error("Failed to list reviews", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctorId": doctorID, "reviews": reviews})
}

// DeleteReviewHandler handles DELETE /api/doctors/:id/reviews/:reviewId.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doctorID := c.Param("id")
	reviewID := c.Param("reviewId")

	summary, err := h.Service.DeleteReview(c.Request.Context(), doctorID, reviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		logger.Error("Failed to delete review",
			zap.String("doctorID", doctorID),
			zap.String("reviewID", reviewID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted",
		"rating":  summary,
	})
}
