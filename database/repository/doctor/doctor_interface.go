package doctorRepo

import (
	"errors"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrDoctorNotFound is returned when no doctor document matches the given id.
var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorRepository defines methods for doctor data access.
type DoctorRepository interface {
	// GetByID retrieves a doctor by its unique ID.
	GetByID(id string) (*models.Doctor, error)
	// GetByEmail retrieves a doctor by contact email, nil when absent.
	GetByEmail(email string) (*models.Doctor, error)
	// GetAll retrieves every doctor with embedded availability.
	GetAll() ([]models.Doctor, error)
	// Create inserts a new doctor record.
	Create(doctor *models.Doctor) error
	// UpdateSet patches the named fields on a doctor document.
	UpdateSet(id string, fields bson.M) error
	// Delete removes a doctor record by its ID.
	Delete(id string) error
	// UpdateRating writes a recomputed rating aggregate back onto the doctor.
	UpdateRating(id string, average float64, count int) error
}
