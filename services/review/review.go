// File: services/review/review.go
package review

import (
	"context"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitReview validates the score, stores the review, and recomputes the
// doctor's aggregate in the same call; readers never observe a review whose
// score is missing from the average for longer than this write takes.
func (s *DefaultReviewService) SubmitReview(ctx context.Context, doctorID string, req models.SubmitReviewRequest) (*models.Review, *models.RatingSummary, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, nil, fmt.Errorf("score %d: %w", req.Score, ErrInvalidScore)
	}

	doctor, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return nil, nil, err
	}

	rev := &models.Review{
		ID:          uuid.New().String(),
		DoctorID:    doctor.ID,
		PatientName: req.PatientName,
		Score:       req.Score,
		Comment:     req.Comment,
		CreatedAt:   time.Now(),
	}
	if err := s.Reviews.Insert(ctx, rev); err != nil {
		return nil, nil, fmt.Errorf("failed to store review: %w", err)
	}

	summary, err := s.recomputeRating(ctx, doctor.ID)
	if err != nil {
		return nil, nil, err
	}

	s.enqueueInvalidation(doctor.ID, "review-submitted")
	return rev, summary, nil
}

// DeleteReview removes one review and recomputes the aggregate. When the last
// review goes, the doctor's rating reverts to undefined.
func (s *DefaultReviewService) DeleteReview(ctx context.Context, doctorID, reviewID string) (*models.RatingSummary, error) {
	if _, err := s.Doctors.GetByID(doctorID); err != nil {
		return nil, err
	}

	if err := s.Reviews.Delete(ctx, doctorID, reviewID); err != nil {
		return nil, err
	}

	summary, err := s.recomputeRating(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	s.enqueueInvalidation(doctorID, "review-deleted")
	return summary, nil
}

// ListReviews returns the doctor's reviews, newest first.
func (s *DefaultReviewService) ListReviews(ctx context.Context, doctorID string) ([]models.Review, error) {
	if _, err := s.Doctors.GetByID(doctorID); err != nil {
		return nil, err
	}
	return s.Reviews.ListByDoctor(ctx, doctorID)
}

// recomputeRating re-derives the mean over all stored reviews and writes it
// back onto the doctor document.
func (s *DefaultReviewService) recomputeRating(ctx context.Context, doctorID string) (*models.RatingSummary, error) {
	avg, count, err := s.Reviews.AverageForDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute rating: %w", err)
	}
	if err := s.Doctors.UpdateRating(doctorID, avg, count); err != nil {
		return nil, fmt.Errorf("failed to store recomputed rating: %w", err)
	}

	if count == 0 {
		avg = 0
	}
	return &models.RatingSummary{
		DoctorID:      doctorID,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

// enqueueInvalidation schedules an async flush of cached search results.
func (s *DefaultReviewService) enqueueInvalidation(doctorID, reason string) {
	logger := utils.GetLogger()

	task, opts, err := tasks.NewSearchCacheInvalidationTask(models.CacheInvalidationPayload{
		DoctorID:    doctorID,
		Reason:      reason,
		RequestedAt: time.Now(),
	})
	if err != nil {
		logger.Error("Failed to build cache invalidation task", zap.Error(err))
		return
	}
	if _, err := s.AsynqClient.Enqueue(task, opts...); err != nil {
		logger.Error("Failed to enqueue cache invalidation task", zap.String("reason", reason), zap.Error(err))
	}
}
