// File: database/repository/schedule/crud.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReplaceAvailability swaps the doctor's whole weekly schedule in one write.
// Slots without an id are assigned one.
func (r *mongoScheduleRepo) ReplaceAvailability(ctx context.Context, doctorID string, slots []models.AvailabilitySlot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.New().String()
		}
		if slots[i].Status == "" {
			slots[i].Status = models.SlotOpen
		}
	}

	update := bson.M{"$set": bson.M{
		"availability": slots,
		"updatedAt":    time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": doctorID}, update)
	if err != nil {
		return fmt.Errorf("failed to replace availability for doctor %s: %w", doctorID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s has no schedule document: %w", doctorID, mongo.ErrNoDocuments)
	}
	return nil
}

// GetAvailability returns the doctor's embedded availability array.
func (r *mongoScheduleRepo) GetAvailability(ctx context.Context, doctorID string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Availability []models.AvailabilitySlot `bson:"availability"`
	}
	err := r.coll.FindOne(ctx, bson.M{"id": doctorID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("doctor %s: %w", doctorID, mongo.ErrNoDocuments)
		}
		return nil, fmt.Errorf("failed to fetch availability for doctor %s: %w", doctorID, err)
	}
	return doc.Availability, nil
}

// GetSlot returns one slot of the doctor's schedule.
func (r *mongoScheduleRepo) GetSlot(ctx context.Context, doctorID, slotID string) (*models.AvailabilitySlot, error) {
	slots, err := r.GetAvailability(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i], nil
		}
	}
	return nil, fmt.Errorf("slot %s of doctor %s: %w", slotID, doctorID, ErrSlotNotFound)
}

// SetSlotStatus performs the compare-and-set transition. The filter binds one
// array element on both id and current status, so a concurrent transition
// makes the match count drop to zero instead of silently overwriting.
func (r *mongoScheduleRepo) SetSlotStatus(ctx context.Context, doctorID, slotID string, from, to models.SlotStatus, bookingID, blockReason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": doctorID,
		"availability": bson.M{"$elemMatch": bson.M{
			"id":     slotID,
			"status": from,
		}},
	}

	set := bson.M{
		"availability.$.status": to,
		"updatedAt":             time.Now(),
	}
	unset := bson.M{}
	switch to {
	case models.SlotBooked:
		set["availability.$.bookingId"] = bookingID
	case models.SlotBlocked:
		set["availability.$.blockReason"] = blockReason
		unset["availability.$.bookingId"] = ""
	case models.SlotOpen:
		unset["availability.$.bookingId"] = ""
		unset["availability.$.blockReason"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set slot %s status: %w", slotID, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing slot from a lost race.
		if _, getErr := r.GetSlot(ctx, doctorID, slotID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("slot %s of doctor %s expected status %q: %w", slotID, doctorID, from, ErrSlotStateChanged)
	}
	return nil
}
