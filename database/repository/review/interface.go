// File: database/repository/review/interface.go
package reviewRepo

import (
	"context"
	"errors"
	"fmt"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrReviewNotFound is returned when no review matches the given id.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	Insert(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, doctorID, reviewID string) error
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Review, error)
	// AverageForDoctor recomputes the mean score over all the doctor's
	// reviews. count is zero when the doctor has none; avg is meaningless then.
	AverageForDoctor(ctx context.Context, doctorID string) (avg float64, count int, err error)
}

type mongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo constructs a new MongoDB ReviewRepository.
func NewMongoReviewRepo() ReviewRepository {
	repo := &mongoReviewRepo{
		coll: database.DB().Collection("reviews"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}
