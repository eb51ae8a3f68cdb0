package models

import (
	"time"
)

// Contact holds a doctor's reachable details.
type Contact struct {
	Email       string `bson:"email" json:"email,omitempty"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Address     string `bson:"address,omitempty" json:"address,omitempty"`
}

type Doctor struct {
	ID              string             `bson:"id" json:"id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Specialization  string             `bson:"specialization" json:"specialization"` // e.g., "Cardiology", "Dermatology"
	Location        string             `bson:"location" json:"location"`             // city or clinic area, e.g., "Nairobi"
	YearsExperience int                `bson:"yearsExperience" json:"yearsExperience"`
	AverageRating   float64            `bson:"averageRating" json:"averageRating"` // mean of review scores; only meaningful when ReviewCount > 0
	ReviewCount     int                `bson:"reviewCount" json:"reviewCount"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Contact         Contact            `bson:"contact" json:"contact,omitzero"`
	Availability    []AvailabilitySlot `bson:"availability" json:"availability,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Rated reports whether the doctor has received at least one review.
func (d *Doctor) Rated() bool {
	return d.ReviewCount > 0
}

type DoctorRegistrationData struct {
	Name            string  `json:"name" binding:"required"`
	Specialization  string  `json:"specialization" binding:"required"`
	Location        string  `json:"location" binding:"required"`
	YearsExperience int     `json:"yearsExperience"`
	Bio             string  `json:"bio,omitempty"`
	Contact         Contact `json:"contact,omitzero"`
}

// DoctorDTO is the trimmed view returned from search and listing endpoints.
type DoctorDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	Location        string  `json:"location"`
	YearsExperience int     `json:"yearsExperience"`
	AverageRating   float64 `json:"averageRating"`
	ReviewCount     int     `json:"reviewCount"`
}

// ToDTO projects the aggregate onto its listing view.
func (d *Doctor) ToDTO() DoctorDTO {
	return DoctorDTO{
		ID:              d.ID,
		Name:            d.Name,
		Specialization:  d.Specialization,
		Location:        d.Location,
		YearsExperience: d.YearsExperience,
		AverageRating:   d.AverageRating,
		ReviewCount:     d.ReviewCount,
	}
}
