package main

import (
	"context"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"medibook/config"
	"medibook/database"
	"medibook/models"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	config.LoadConfig()
	database.InitDB()

	gofakeit.Seed(time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	doctorIDs, err := seedDoctors(ctx, 60)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedReviews(ctx, doctorIDs); err != nil {
		log.Fatalf("seed reviews: %v", err)
	}

	log.Println("seed complete")
}

var specializations = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

var weekdays = []models.Weekday{
	models.Monday,
	models.Tuesday,
	models.Wednesday,
	models.Thursday,
	models.Friday,
	models.Saturday,
	models.Sunday,
}

func seedDoctors(ctx context.Context, count int) ([]string, error) {
	log.Printf("seeding %d doctors", count)

	coll := database.DB().Collection("doctors")
	ids := make([]string, 0, count)
	docs := make([]interface{}, 0, count)

	for i := 0; i < count; i++ {
		now := time.Now()
		id := uuid.New().String()
		ids = append(ids, id)

		docs = append(docs, models.Doctor{
			ID:              id,
			Name:            "Dr. " + gofakeit.Name(),
			Specialization:  specializations[gofakeit.Number(0, len(specializations)-1)],
			Location:        gofakeit.City(),
			YearsExperience: gofakeit.Number(1, 35),
			Bio:             gofakeit.Sentence(12),
			Contact: models.Contact{
				Email:       gofakeit.Email(),
				PhoneNumber: gofakeit.Phone(),
				Address:     gofakeit.Street(),
			},
			Availability: randomWeeklySlots(),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return nil, err
	}

	log.Println("doctors seeded")
	return ids, nil
}

// randomWeeklySlots builds a handful of non-overlapping open slots spread
// over a few working days.
func randomWeeklySlots() []models.AvailabilitySlot {
	slots := []models.AvailabilitySlot{}

	dayCount := gofakeit.Number(2, 5)
	for d := 0; d < dayCount; d++ {
		day := weekdays[gofakeit.Number(0, len(weekdays)-1)]
		if hasDay(slots, day) {
			continue
		}

		// Work the day forward from 8:00, leaving gaps between slots.
		cursor := 8 * 60
		slotCount := gofakeit.Number(1, 3)
		for s := 0; s < slotCount && cursor < 17*60; s++ {
			length := gofakeit.Number(2, 6) * 30
			end := cursor + length
			if end > 18*60 {
				end = 18 * 60
			}
			slots = append(slots, models.AvailabilitySlot{
				ID:     uuid.New().String(),
				Day:    day,
				Start:  cursor,
				End:    end,
				Status: models.SlotOpen,
			})
			cursor = end + gofakeit.Number(0, 2)*30
		}
	}

	return slots
}

func hasDay(slots []models.AvailabilitySlot, day models.Weekday) bool {
	for _, s := range slots {
		if s.Day == day {
			return true
		}
	}
	return false
}

func seedReviews(ctx context.Context, doctorIDs []string) error {
	log.Printf("seeding reviews for %d doctors", len(doctorIDs))

	reviewColl := database.DB().Collection("reviews")
	doctorColl := database.DB().Collection("doctors")

	for _, doctorID := range doctorIDs {
		// Leave some doctors unrated.
		if gofakeit.Number(1, 100) <= 30 {
			continue
		}

		reviewCount := gofakeit.Number(1, 8)
		docs := make([]interface{}, 0, reviewCount)
		total := 0
		for i := 0; i < reviewCount; i++ {
			score := gofakeit.Number(1, 5)
			total += score
			docs = append(docs, models.Review{
				ID:          uuid.New().String(),
				DoctorID:    doctorID,
				PatientName: gofakeit.Name(),
				Score:       score,
				Comment:     gofakeit.Sentence(10),
				CreatedAt:   time.Now().AddDate(0, 0, -gofakeit.Number(0, 365)),
			})
		}

		if _, err := reviewColl.InsertMany(ctx, docs); err != nil {
			return err
		}

		average := float64(total) / float64(reviewCount)
		update := bson.M{"$set": bson.M{
			"averageRating": average,
			"reviewCount":   reviewCount,
			"updatedAt":     time.Now(),
		}}
		if _, err := doctorColl.UpdateOne(ctx, bson.M{"id": doctorID}, update); err != nil {
			return err
		}
	}

	log.Println("reviews seeded")
	return nil
}
