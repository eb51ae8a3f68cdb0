// File: services/directory/crud.go
package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medibook/models"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// RegisterDoctor validates the registration payload, assigns an id, and
// persists the new doctor with an empty schedule.
func (s *DefaultDirectoryService) RegisterDoctor(ctx context.Context, data models.DoctorRegistrationData) (*models.Doctor, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, InvalidFieldError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(data.Specialization) == "" {
		return nil, InvalidFieldError{Field: "specialization", Reason: "must not be empty"}
	}
	if strings.TrimSpace(data.Location) == "" {
		return nil, InvalidFieldError{Field: "location", Reason: "must not be empty"}
	}
	if data.YearsExperience < 0 {
		return nil, InvalidFieldError{Field: "yearsExperience", Reason: "must not be negative"}
	}

	if data.Contact.Email != "" {
		existing, err := s.Repo.GetByEmail(data.Contact.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if existing != nil {
			return nil, DuplicateEmailError{Email: data.Contact.Email}
		}
	}

	now := time.Now()
	doctor := &models.Doctor{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(data.Name),
		Specialization:  strings.TrimSpace(data.Specialization),
		Location:        strings.TrimSpace(data.Location),
		YearsExperience: data.YearsExperience,
		Bio:             data.Bio,
		Contact:         data.Contact,
		Availability:    []models.AvailabilitySlot{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Repo.Create(doctor); err != nil {
		return nil, fmt.Errorf("failed to register doctor: %w", err)
	}

	s.enqueueInvalidation(doctor.ID, "doctor-registered")
	return doctor, nil
}

// GetDoctor retrieves a doctor by its unique ID.
func (s *DefaultDirectoryService) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	return s.Repo.GetByID(id)
}

// GetAllDoctors returns the listing view of every doctor.
func (s *DefaultDirectoryService) GetAllDoctors(ctx context.Context) ([]models.DoctorDTO, error) {
	doctors, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}

	dtos := make([]models.DoctorDTO, 0, len(doctors))
	for i := range doctors {
		dtos = append(dtos, doctors[i].ToDTO())
	}
	return dtos, nil
}

// UpdateDoctor merges allowed updates and returns the updated doctor record.
// It implements patch-style updates; the id is immutable.
func (s *DefaultDirectoryService) UpdateDoctor(ctx context.Context, id string, updates map[string]interface{}) (*models.Doctor, error) {
	updateFields := bson.M{}

	if v, ok := updates["name"].(string); ok && strings.TrimSpace(v) != "" {
		updateFields["name"] = strings.TrimSpace(v)
	}
	if v, ok := updates["specialization"].(string); ok && strings.TrimSpace(v) != "" {
		updateFields["specialization"] = strings.TrimSpace(v)
	}
	if v, ok := updates["location"].(string); ok && strings.TrimSpace(v) != "" {
		updateFields["location"] = strings.TrimSpace(v)
	}
	if v, ok := updates["yearsExperience"]; ok {
		// JSON numbers decode as float64.
		years, isNum := v.(float64)
		if !isNum || years < 0 || years != float64(int(years)) {
			return nil, InvalidFieldError{Field: "yearsExperience", Reason: "must be a non-negative whole number"}
		}
		updateFields["yearsExperience"] = int(years)
	}
	if v, ok := updates["bio"].(string); ok {
		updateFields["bio"] = v
	}
	if contact, ok := updates["contact"].(map[string]interface{}); ok {
		if v, ok := contact["email"].(string); ok {
			updateFields["contact.email"] = v
		}
		if v, ok := contact["phoneNumber"].(string); ok {
			updateFields["contact.phoneNumber"] = v
		}
		if v, ok := contact["address"].(string); ok {
			updateFields["contact.address"] = v
		}
	}

	if len(updateFields) == 0 {
		return nil, InvalidFieldError{Field: "update", Reason: "no updatable fields provided"}
	}

	if err := s.Repo.UpdateSet(id, updateFields); err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload doctor after update: %w", err)
	}

	s.enqueueInvalidation(id, "doctor-updated")
	return updated, nil
}

// DeleteDoctor removes a doctor record by its ID.
func (s *DefaultDirectoryService) DeleteDoctor(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.enqueueInvalidation(id, "doctor-deleted")
	return nil
}

// enqueueInvalidation schedules an async flush of cached search results.
// Failures are logged, not returned: the cache self-heals once its TTL runs
// out, so a mutation never fails because the queue was unreachable.
func (s *DefaultDirectoryService) enqueueInvalidation(doctorID, reason string) {
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
