package doctorRepo

import (
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, doctor)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// UpdateSet patches the named fields on an existing doctor document. The id
// field itself is never part of the patch.
func (r *MongoDoctorRepo) UpdateSet(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	delete(fields, "id")
	fields["updatedAt"] = time.Now()

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s: %w", id, ErrDoctorNotFound)
	}
	return nil
}

// Delete removes a doctor document by its ID.
func (r *MongoDoctorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete doctor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("doctor with id %s: %w", id, ErrDoctorNotFound)
	}
	return nil
}

// UpdateRating writes the recomputed rating aggregate. A count of zero resets
// the average to its undefined state.
func (r *MongoDoctorRepo) UpdateRating(id string, average float64, count int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if count == 0 {
		average = 0
	}
	update := bson.M{"$set": bson.M{
		"averageRating": average,
		"reviewCount":   count,
		"updatedAt":     time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating for doctor %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s: %w", id, ErrDoctorNotFound)
	}
	return nil
}
