package review

import (
	"context"
	"errors"
	"fmt"

	"medibook/database/repository"
	"medibook/models"

	"github.com/hibiken/asynq"
)

// ErrInvalidScore is returned when a submitted score is not a whole number
// of stars between 1 and 5.
var ErrInvalidScore = errors.New("review score must be between 1 and 5")

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews     repository.ReviewRepository
	Doctors     repository.DoctorRepository
	AsynqClient *asynq.Client
}

func NewDefaultReviewService(
	reviews repository.ReviewRepository,
	doctors repository.DoctorRepository,
	asynqClient *asynq.Client,
) (*DefaultReviewService, error) {
	if reviews == nil || doctors == nil || asynqClient == nil {
		return nil, fmt.Errorf("review service initialization error: one or more dependencies are nil")
	}

	return &DefaultReviewService{
		Reviews:     reviews,
		Doctors:     doctors,
		AsynqClient: asynqClient,
	}, nil
}

type ReviewService interface {
	// SubmitReview stores the review and synchronously recomputes the
	// doctor's average rating before returning.
	SubmitReview(ctx context.Context, doctorID string, req models.SubmitReviewRequest) (*models.Review, *models.RatingSummary, error)
	// DeleteReview removes a review and recomputes; deleting the last review
	// returns the doctor to the unrated state.
	DeleteReview(ctx context.Context, doctorID, reviewID string) (*models.RatingSummary, error)
	ListReviews(ctx context.Context, doctorID string) ([]models.Review, error)
}
