// File: services/schedule/availability.go
package schedule

import (
	"context"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services/tasks"
	"medibook/utils"

	"go.uber.org/zap"
)

const minutesPerDay = 24 * 60

// SetupAvailability validates and replaces a doctor's whole weekly schedule.
// Every slot must keep start before end, and no two non-blocked slots on the
// same day may overlap; searches assume both.
func (s *DefaultScheduleService) SetupAvailability(ctx context.Context, doctorID string, req models.SetupAvailabilityRequest) (*models.ScheduleDTO, error) {
	doctor, err := s.DoctorRepo.GetByID(doctorID)
	if err != nil {
		return nil, err
	}

	slots := req.Slots
	for i := range slots {
		if slots[i].Status == "" {
			slots[i].Status = models.SlotOpen
		}
	}
	if err := validateSlots(slots); err != nil {
		return nil, err
	}

	if err := s.Repo.ReplaceAvailability(ctx, doctor.ID, slots); err != nil {
		return nil, fmt.Errorf("failed to store availability: %w", err)
	}

	stored, err := s.Repo.GetAvailability(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload availability: %w", err)
	}

	s.enqueueInvalidation(doctorID, "availability-replaced")

	return &models.ScheduleDTO{
		DoctorID: doctor.ID,
		Slots:    stored,
	}, nil
}

// GetAvailability returns the doctor's current weekly schedule.
func (s *DefaultScheduleService) GetAvailability(ctx context.Context, doctorID string) ([]models.AvailabilitySlot, error) {
	if _, err := s.DoctorRepo.GetByID(doctorID); err != nil {
		return nil, err
	}
	return s.Repo.GetAvailability(ctx, doctorID)
}

func validateSlots(slots []models.AvailabilitySlot) error {
	for i, slot := range slots {
		if !slot.Day.Valid() {
			return SlotValidationError{Index: i, Reason: fmt.Sprintf("unknown weekday %q", slot.Day)}
		}
		if !slot.Status.Valid() {
			return SlotValidationError{Index: i, Reason: fmt.Sprintf("unknown status %q", slot.Status)}
		}
		if slot.Start < 0 || slot.End > minutesPerDay {
			return SlotValidationError{Index: i, Reason: "slot must lie within a single day"}
		}
		if slot.Start >= slot.End {
			return SlotValidationError{Index: i, Reason: "start must be before end"}
		}
	}

	// Blocked slots are off the schedule, so only the rest must be disjoint.
	for i := 0; i < len(slots); i++ {
		if slots[i].Status == models.SlotBlocked {
			continue
		}
		for j := i + 1; j < len(slots); j++ {
			if slots[j].Status == models.SlotBlocked {
				continue
			}
			if slots[i].Overlaps(slots[j]) {
				return SlotValidationError{
					Index: j,
					Reason: fmt.Sprintf("overlaps slot %d (%s %s-%s)", i+1, slots[i].Day,
						utils.MinutesToClock(slots[i].Start), utils.MinutesToClock(slots[i].End)),
				}
			}
		}
	}
	return nil
}

// enqueueInvalidation schedules an async flush of cached search results.
func (s *DefaultScheduleService) enqueueInvalidation(doctorID, reason string) {
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
