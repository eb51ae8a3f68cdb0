package models

import "time"

type Review struct {
	ID          string    `bson:"id" json:"id"`
	DoctorID    string    `bson:"doctorId" json:"doctorId"`
	PatientName string    `bson:"patientName" json:"patientName,omitempty"`
	Score       int       `bson:"score" json:"score"` // whole stars, 1 through 5
	Comment     string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

type SubmitReviewRequest struct {
	PatientName string `json:"patientName,omitempty"`
	Score       int    `json:"score" binding:"required"`
	Comment     string `json:"comment,omitempty"`
}

// RatingSummary carries a doctor's recomputed aggregate after a review write.
type RatingSummary struct {
	DoctorID      string  `json:"doctorId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
