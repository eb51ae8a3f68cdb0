package schedule

import (
	"context"
	"testing"

	doctorRepo "medibook/database/repository/doctor"
	scheduleRepo "medibook/database/repository/schedule"
	"medibook/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockScheduleRepository is a mock implementation of ScheduleRepository.
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) ReplaceAvailability(ctx context.Context, doctorID string, slots []models.AvailabilitySlot) error {
	args := m.Called(ctx, doctorID, slots)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetAvailability(ctx context.Context, doctorID string) ([]models.AvailabilitySlot, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AvailabilitySlot), args.Error(1)
}

func (m *MockScheduleRepository) GetSlot(ctx context.Context, doctorID, slotID string) (*models.AvailabilitySlot, error) {
	args := m.Called(ctx, doctorID, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilitySlot), args.Error(1)
}

func (m *MockScheduleRepository) SetSlotStatus(ctx context.Context, doctorID, slotID string, from, to models.SlotStatus, bookingID, blockReason string) error {
	args := m.Called(ctx, doctorID, slotID, from, to, bookingID, blockReason)
	return args.Error(0)
}

// MockDoctorRepository is a mock implementation of doctorRepo.DoctorRepository.
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) GetByID(id string) (*models.Doctor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) GetByEmail(email string) (*models.Doctor, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) GetAll() ([]models.Doctor, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Create(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) UpdateSet(id string, fields bson.M) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDoctorRepository) UpdateRating(id string, average float64, count int) error {
	args := m.Called(id, average, count)
	return args.Error(0)
}

// passthroughLocker runs the critical section inline and counts acquisitions.
type passthroughLocker struct {
	acquired int
}

func (l *passthroughLocker) WithSlotLock(ctx context.Context, doctorID, slotID string, fn func(context.Context) error) error {
	l.acquired++
	return fn(ctx)
}

func setupScheduleService() (*DefaultScheduleService, *MockScheduleRepository, *MockDoctorRepository, *passthroughLocker) {
	mockRepo := &MockScheduleRepository{}
	mockDoctors := &MockDoctorRepository{}
	locker := &passthroughLocker{}

	svc := &DefaultScheduleService{
		Repo:        mockRepo,
		DoctorRepo:  mockDoctors,
		Locker:      locker,
		AsynqClient: asynq.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:1"}),
	}
	return svc, mockRepo, mockDoctors, locker
}

func TestSetupAvailability_ReplacesSchedule(t *testing.T) {
	svc, mockRepo, mockDoctors, _ := setupScheduleService()

	doctor := &models.Doctor{ID: "doc-1", Name: "Dr. Adams"}
	mockDoctors.On("GetByID", "doc-1").Return(doctor, nil)

	// Status left empty on purpose; the service must default it to open.
	submitted := []models.AvailabilitySlot{
		{ID: "slot-1", Day: models.Monday, Start: 540, End: 600},
	}
	stored := []models.AvailabilitySlot{
		{ID: "slot-1", Day: models.Monday, Start: 540, End: 600, Status: models.SlotOpen},
	}

	mockRepo.On("ReplaceAvailability", mock.Anything, "doc-1", stored).Return(nil)
	mockRepo.On("GetAvailability", mock.Anything, "doc-1").Return(stored, nil)

	dto, err := svc.SetupAvailability(context.Background(), "doc-1", models.SetupAvailabilityRequest{Slots: submitted})

	assert.NoError(t, err)
	assert.Equal(t, "doc-1", dto.DoctorID)
	assert.Equal(t, stored, dto.Slots)
	mockRepo.AssertExpectations(t)
	mockDoctors.AssertExpectations(t)
}

func TestSetupAvailability_RejectsOverlappingSlots(t *testing.T) {
	svc, mockRepo, mockDoctors, _ := setupScheduleService()

	mockDoctors.On("GetByID", "doc-1").Return(&models.Doctor{ID: "doc-1"}, nil)

	req := models.SetupAvailabilityRequest{Slots: []models.AvailabilitySlot{
		{ID: "slot-1", Day: models.Monday, Start: 540, End: 660, Status: models.SlotOpen},
		{ID: "slot-2", Day: models.Monday, Start: 600, End: 720, Status: models.SlotOpen},
	}}

	_, err := svc.SetupAvailability(context.Background(), "doc-1", req)

	var valErr SlotValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Contains(t, err.Error(), "overlaps")
	mockRepo.AssertNotCalled(t, "ReplaceAvailability", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetupAvailability_IgnoresBlockedOverlap(t *testing.T) {
	svc, mockRepo, mockDoctors, _ := setupScheduleService()

	mockDoctors.On("GetByID", "doc-1").Return(&models.Doctor{ID: "doc-1"}, nil)

	// A blocked slot may shadow an open one; it is off the schedule anyway.
	slots := []models.AvailabilitySlot{
		{ID: "slot-1", Day: models.Monday, Start: 540, End: 660, Status: models.SlotOpen},
		{ID: "slot-2", Day: models.Monday, Start: 600, End: 720, Status: models.SlotBlocked},
	}
	mockRepo.On("ReplaceAvailability", mock.Anything, "doc-1", slots).Return(nil)
	mockRepo.On("GetAvailability", mock.Anything, "doc-1").Return(slots, nil)

	_, err := svc.SetupAvailability(context.Background(), "doc-1", models.SetupAvailabilityRequest{Slots: slots})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSetupAvailability_RejectsInvertedTimes(t *testing.T) {
	svc, _, mockDoctors, _ := setupScheduleService()

	mockDoctors.On("GetByID", "doc-1").Return(&models.Doctor{ID: "doc-1"}, nil)

	req := models.SetupAvailabilityRequest{Slots: []models.AvailabilitySlot{
		{ID: "slot-1", Day: models.Friday, Start: 600, End: 600, Status: models.SlotOpen},
	}}

	_, err := svc.SetupAvailability(context.Background(), "doc-1", req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "start must be before end")
}

func TestSetupAvailability_UnknownDoctor(t *testing.T) {
	svc, _, mockDoctors, _ := setupScheduleService()

	mockDoctors.On("GetByID", "ghost").Return(nil, doctorRepo.ErrDoctorNotFound)

	_, err := svc.SetupAvailability(context.Background(), "ghost", models.SetupAvailabilityRequest{})

	assert.ErrorIs(t, err, doctorRepo.ErrDoctorNotFound)
}

func TestBookSlot_TransitionsOpenSlot(t *testing.T) {
	svc, mockRepo, _, locker := setupScheduleService()

	slot := &models.AvailabilitySlot{ID: "slot-1", Day: models.Monday, Start: 540, End: 600, Status: models.SlotOpen}
	mockRepo.On("GetSlot", mock.Anything, "doc-1", "slot-1").Return(slot, nil)
	mockRepo.On("SetSlotStatus", mock.Anything, "doc-1", "slot-1",
		models.SlotOpen, models.SlotBooked, mock.AnythingOfType("string"), "").Return(nil)

	bookingID, err := svc.BookSlot(context.Background(), "doc-1", "slot-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, bookingID)
	assert.Equal(t, 1, locker.acquired)
	mockRepo.AssertExpectations(t)
}

func TestBookSlot_ConflictsWhenAlreadyBooked(t *testing.T) {
	svc, mockRepo, _, _ := setupScheduleService()

	slot := &models.AvailabilitySlot{ID: "slot-1", Status: models.SlotBooked, BookingID: "b-1"}
	mockRepo.On("GetSlot", mock.Anything, "doc-1", "slot-1").Return(slot, nil)

	_, err := svc.BookSlot(context.Background(), "doc-1", "slot-1")

	var stateErr SlotStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.SlotBooked, stateErr.Current)
	assert.Equal(t, models.SlotOpen, stateErr.Wanted)
	mockRepo.AssertNotCalled(t, "SetSlotStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookSlot_SurfacesLostRace(t *testing.T) {
	svc, mockRepo, _, _ := setupScheduleService()

	slot := &models.AvailabilitySlot{ID: "slot-1", Status: models.SlotOpen}
	mockRepo.On("GetSlot", mock.Anything, "doc-1", "slot-1").Return(slot, nil)
	mockRepo.On("SetSlotStatus", mock.Anything, "doc-1", "slot-1",
		models.SlotOpen, models.SlotBooked, mock.AnythingOfType("string"), "").
		Return(scheduleRepo.ErrSlotStateChanged)

	_, err := svc.BookSlot(context.Background(), "doc-1", "slot-1")

	assert.ErrorIs(t, err, scheduleRepo.ErrSlotStateChanged)
}

func TestCancelBooking_ReopensSlot(t *testing.T) {
	svc, mockRepo, _, locker := setupScheduleService()

	slot := &models.AvailabilitySlot{ID: "slot-1", Status: models.SlotBooked, BookingID: "b-1"}
	mockRepo.On("GetSlot", mock.Anything, "doc-1", "slot-1").Return(slot, nil)
	mockRepo.On("SetSlotStatus", mock.Anything, "doc-1", "slot-1",
		models.SlotBooked, models.SlotOpen, "", "").Return(nil)

	err := svc.CancelBooking(context.Background(), "doc-1", "slot-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, locker.acquired)
	mockRepo.AssertExpectations(t)
}

func TestBlockSlot_DisplacesBooking(t *testing.T) {
	svc, mockRepo, _, _ := setupScheduleService()

	slot := &models.AvailabilitySlot{ID: "slot-1", Status: models.SlotBooked, BookingID: "b-1"}
	mockRepo.On("GetSlot", mock.Anything, "doc-1", "slot-1").Return(slot, nil)
	mockRepo.On("SetSlotStatus", mock.Anything, "doc-1", "slot-1",
		models.SlotBooked, models.SlotBlocked, "", "maintenance").Return(nil)

	err := svc.BlockSlot(context.Background(), "doc-1", "slot-1", "maintenance")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestBlockSlot_AlreadyBlocked(t *testing.T) {
	svc, mockRepo, _, _ := setupScheduleService()

	slot := &models.AvailabilitySlot{ID: "slot-1", Status: models.SlotBlocked, BlockReason: "leave"}
	mockRepo.On("GetSlot", mock.Anything, "doc-1", "slot-1").Return(slot, nil)

	err := svc.BlockSlot(context.Background(), "doc-1", "slot-1", "maintenance")

	var stateErr SlotStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.SlotBlocked, stateErr.Current)
}

func TestUnblockSlot_RequiresBlocked(t *testing.T) {
	svc, mockRepo, _, _ := setupScheduleService()

	slot := &models.AvailabilitySlot{ID: "slot-1", Status: models.SlotOpen}
	mockRepo.On("GetSlot", mock.Anything, "doc-1", "slot-1").Return(slot, nil)

	err := svc.UnblockSlot(context.Background(), "doc-1", "slot-1")

	var stateErr SlotStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.SlotOpen, stateErr.Current)
	assert.Equal(t, models.SlotBlocked, stateErr.Wanted)
}

func TestGetAvailability_UnknownDoctor(t *testing.T) {
	svc, _, mockDoctors, _ := setupScheduleService()

	mockDoctors.On("GetByID", "ghost").Return(nil, doctorRepo.ErrDoctorNotFound)

	_, err := svc.GetAvailability(context.Background(), "ghost")

	assert.ErrorIs(t, err, doctorRepo.ErrDoctorNotFound)
}
