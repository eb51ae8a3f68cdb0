// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"errors"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrSlotNotFound is returned when the doctor has no slot with that id.
	ErrSlotNotFound = errors.New("availability slot not found")
	// ErrSlotStateChanged is returned when a status transition loses its
	// compare-and-set race: the slot exists but is no longer in the expected
	// state.
	ErrSlotStateChanged = errors.New("availability slot state changed")
)

// ScheduleRepository mutates the availability array embedded in doctor
// documents. Search never goes through here; it reads the pre-joined doctor
// snapshot instead.
type ScheduleRepository interface {
	ReplaceAvailability(ctx context.Context, doctorID string, slots []models.AvailabilitySlot) error
	GetAvailability(ctx context.Context, doctorID string) ([]models.AvailabilitySlot, error)
	GetSlot(ctx context.Context, doctorID, slotID string) (*models.AvailabilitySlot, error)
	// SetSlotStatus moves one slot from an expected status to a new one in a
	// single compare-and-set write.
	SetSlotStatus(ctx context.Context, doctorID, slotID string, from, to models.SlotStatus, bookingID, blockReason string) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	return &mongoScheduleRepo{
		coll: database.DB().Collection("doctors"),
	}
}
