package directory

import (
	"context"
	"fmt"

	"medibook/database/repository"
	"medibook/models"
	"medibook/search"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// DefaultDirectoryService is the production implementation.
type DefaultDirectoryService struct {
	Repo        repository.DoctorRepository
	CacheClient *redis.Client
	AsynqClient *asynq.Client
}

func NewDefaultDirectoryService(
	repo repository.DoctorRepository,
	cacheClient *redis.Client,
	asynqClient *asynq.Client,
) (*DefaultDirectoryService, error) {
	if repo == nil || cacheClient == nil || asynqClient == nil {
		return nil, fmt.Errorf("directory service initialization error: one or more dependencies are nil")
	}

	return &DefaultDirectoryService{
		Repo:        repo,
		CacheClient: cacheClient,
		AsynqClient: asynqClient,
	}, nil
}

type DirectoryService interface {
	// Search runs the filter engine over the current doctor snapshot, serving
	// from the result cache when possible.
	Search(ctx context.Context, criteria search.Criteria, page search.Page) (*search.Result, error)

	// Doctor account management
	RegisterDoctor(ctx context.Context, data models.DoctorRegistrationData) (*models.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	GetAllDoctors(ctx context.Context) ([]models.DoctorDTO, error)
	UpdateDoctor(ctx context.Context, id string, updates map[string]interface{}) (*models.Doctor, error)
	DeleteDoctor(ctx context.Context, id string) error
}
