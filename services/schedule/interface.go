package schedule

import (
	"context"
	"fmt"

	"medibook/database/repository"
	"medibook/models"
	"medibook/utils"

	"github.com/hibiken/asynq"
)

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Repo        repository.ScheduleRepository
	DoctorRepo  repository.DoctorRepository
	Locker      utils.SlotLocker
	AsynqClient *asynq.Client
}

func NewDefaultScheduleService(
	repo repository.ScheduleRepository,
	doctorRepo repository.DoctorRepository,
	locker utils.SlotLocker,
	asynqClient *asynq.Client,
) (*DefaultScheduleService, error) {
	if repo == nil || doctorRepo == nil || locker == nil || asynqClient == nil {
		return nil, fmt.Errorf("schedule service initialization error: one or more dependencies are nil")
	}

	return &DefaultScheduleService{
		Repo:        repo,
		DoctorRepo:  doctorRepo,
		Locker:      locker,
		AsynqClient: asynqClient,
	}, nil
}

type ScheduleService interface {
	// Weekly schedule management
	SetupAvailability(ctx context.Context, doctorID string, req models.SetupAvailabilityRequest) (*models.ScheduleDTO, error)
	GetAvailability(ctx context.Context, doctorID string) ([]models.AvailabilitySlot, error)

	// Slot status transitions, serialized per slot
	BookSlot(ctx context.Context, doctorID, slotID string) (bookingID string, err error)
	CancelBooking(ctx context.Context, doctorID, slotID string) error
	BlockSlot(ctx context.Context, doctorID, slotID, reason string) error
	UnblockSlot(ctx context.Context, doctorID, slotID string) error
}
