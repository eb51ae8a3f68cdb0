// File: services/schedule/booking.go
package schedule

import (
	"context"
	"fmt"

	"medibook/models"

	"github.com/google/uuid"
)

// BookSlot moves an open slot to booked and returns the booking id. The
// transition runs under the slot's distributed lock, so two patients racing
// for the same slot get one booking and one conflict.
func (s *DefaultScheduleService) BookSlot(ctx context.Context, doctorID, slotID string) (string, error) {
	bookingID := uuid.New().String()

	err := s.Locker.WithSlotLock(ctx, doctorID, slotID, func(ctx context.Context) error {
		return s.transition(ctx, doctorID, slotID, models.SlotOpen, models.SlotBooked, bookingID, "")
	})
	if err != nil {
		return "", err
	}

	s.enqueueInvalidation(doctorID, "slot-booked")
	return bookingID, nil
}

// CancelBooking releases a booked slot back to open.
func (s *DefaultScheduleService) CancelBooking(ctx context.Context, doctorID, slotID string) error {
	err := s.Locker.WithSlotLock(ctx, doctorID, slotID, func(ctx context.Context) error {
		return s.transition(ctx, doctorID, slotID, models.SlotBooked, models.SlotOpen, "", "")
	})
	if err != nil {
		return err
	}

	s.enqueueInvalidation(doctorID, "booking-cancelled")
	return nil
}

// BlockSlot takes a slot off the schedule regardless of its current status.
// An existing booking is displaced; its id is dropped with the transition.
func (s *DefaultScheduleService) BlockSlot(ctx context.Context, doctorID, slotID, reason string) error {
	err := s.Locker.WithSlotLock(ctx, doctorID, slotID, func(ctx context.Context) error {
		slot, err := s.Repo.GetSlot(ctx, doctorID, slotID)
		if err != nil {
			return err
		}
		if slot.Status == models.SlotBlocked {
			return SlotStateError{SlotID: slotID, Current: slot.Status, Wanted: models.SlotOpen}
		}
		return s.transition(ctx, doctorID, slotID, slot.Status, models.SlotBlocked, "", reason)
	})
	if err != nil {
		return err
	}

	s.enqueueInvalidation(doctorID, "slot-blocked")
	return nil
}

// UnblockSlot returns a blocked slot to open.
func (s *DefaultScheduleService) UnblockSlot(ctx context.Context, doctorID, slotID string) error {
	err := s.Locker.WithSlotLock(ctx, doctorID, slotID, func(ctx context.Context) error {
		return s.transition(ctx, doctorID, slotID, models.SlotBlocked, models.SlotOpen, "", "")
	})
	if err != nil {
		return err
	}

	s.enqueueInvalidation(doctorID, "slot-unblocked")
	return nil
}

// transition performs one compare-and-set status change, translating a failed
// precondition into a SlotStateError carrying the slot's actual status.
func (s *DefaultScheduleService) transition(ctx context.Context, doctorID, slotID string, from, to models.SlotStatus, bookingID, blockReason string) error {
	slot, err := s.Repo.GetSlot(ctx, doctorID, slotID)
	if err != nil {
		return err
	}
	if slot.Status != from {
		return SlotStateError{SlotID: slotID, Current: slot.Status, Wanted: from}
	}

	if err := s.Repo.SetSlotStatus(ctx, doctorID, slotID, from, to, bookingID, blockReason); err != nil {
		return fmt.Errorf("slot %s transition %s->%s: %w", slotID, from, to, err)
	}
	return nil
}
