package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/search"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

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

// deadCache is a client with nothing listening behind it. Gets fail fast, so
// every lookup is a miss, and the fire-and-forget Set is a no-op.
func deadCache() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func setupDirectoryService() (*DefaultDirectoryService, *MockDoctorRepository) {
	mockRepo := &MockDoctorRepository{}
	svc := &DefaultDirectoryService{
		Repo:        mockRepo,
		CacheClient: deadCache(),
		AsynqClient: asynq.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:1"}),
	}
	return svc, mockRepo
}

func TestSearch_ValidatesBeforeTouchingStore(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	bad := 6.0
	_, err := svc.Search(context.Background(), search.Criteria{MinRating: &bad}, search.Page{Page: 0, PageSize: 10})

	assert.Error(t, err)
	assert.True(t, search.IsValidationError(err))
	mockRepo.AssertNotCalled(t, "GetAll")
}

func TestSearch_RunsEngineOverSnapshot(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	snapshot := []models.Doctor{
		{ID: "d-1", Name: "Dr. Adams", Specialization: "Cardiology", AverageRating: 4.2, ReviewCount: 10},
		{ID: "d-2", Name: "Dr. Brook", Specialization: "Cardiology", AverageRating: 4.8, ReviewCount: 7},
		{ID: "d-3", Name: "Dr. Cole", Specialization: "Dermatology", AverageRating: 4.9, ReviewCount: 3},
	}
	mockRepo.On("GetAll").Return(snapshot, nil)

	result, err := svc.Search(context.Background(),
		search.Criteria{Specialization: "cardiology"},
		search.Page{Page: 0, PageSize: 10})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalMatched)
	assert.Equal(t, "d-2", result.Matches[0].ID)
	assert.Equal(t, "d-1", result.Matches[1].ID)
	assert.False(t, result.HasMore)
	mockRepo.AssertExpectations(t)
}

func TestSearch_PropagatesStoreFailure(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	mockRepo.On("GetAll").Return(nil, errors.New("mongo down"))

	_, err := svc.Search(context.Background(), search.Criteria{}, search.Page{Page: 0, PageSize: 10})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve doctors")
}

func TestRegisterDoctor_AssignsIDAndDefaults(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	mockRepo.On("GetByEmail", "adams@clinic.example").Return(nil, nil)

	var created *models.Doctor
	mockRepo.On("Create", mock.AnythingOfType("*models.Doctor")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Doctor)
	}).Return(nil)

	data := models.DoctorRegistrationData{
		Name:            "  Dr. Adams ",
		Specialization:  "Cardiology",
		Location:        "Nairobi",
		YearsExperience: 12,
		Contact:         models.Contact{Email: "adams@clinic.example"},
	}
	doctor, err := svc.RegisterDoctor(context.Background(), data)

	assert.NoError(t, err)
	assert.NotEmpty(t, doctor.ID)
	assert.Equal(t, "Dr. Adams", doctor.Name)
	assert.NotNil(t, doctor.Availability)
	assert.Empty(t, doctor.Availability)
	assert.False(t, doctor.CreatedAt.IsZero())
	assert.Equal(t, created, doctor)
	mockRepo.AssertExpectations(t)
}

func TestRegisterDoctor_RejectsDuplicateEmail(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	existing := &models.Doctor{ID: "d-1", Contact: models.Contact{Email: "taken@clinic.example"}}
	mockRepo.On("GetByEmail", "taken@clinic.example").Return(existing, nil)

	data := models.DoctorRegistrationData{
		Name:           "Dr. New",
		Specialization: "Cardiology",
		Location:       "Nairobi",
		Contact:        models.Contact{Email: "taken@clinic.example"},
	}
	_, err := svc.RegisterDoctor(context.Background(), data)

	var dupErr DuplicateEmailError
	assert.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "taken@clinic.example", dupErr.Email)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegisterDoctor_RejectsBlankFields(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	_, err := svc.RegisterDoctor(context.Background(), models.DoctorRegistrationData{
		Name:           "   ",
		Specialization: "Cardiology",
		Location:       "Nairobi",
	})

	var fieldErr InvalidFieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "name", fieldErr.Field)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateDoctor_PatchesAllowedFields(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	expected := bson.M{
		"name":            "Dr. Renamed",
		"yearsExperience": 15,
		"contact.email":   "renamed@clinic.example",
	}
	mockRepo.On("UpdateSet", "d-1", expected).Return(nil)

	reloaded := &models.Doctor{ID: "d-1", Name: "Dr. Renamed", YearsExperience: 15}
	mockRepo.On("GetByID", "d-1").Return(reloaded, nil)

	updates := map[string]interface{}{
		"name":            "Dr. Renamed",
		"yearsExperience": 15.0,
		"contact":         map[string]interface{}{"email": "renamed@clinic.example"},
	}
	doctor, err := svc.UpdateDoctor(context.Background(), "d-1", updates)

	assert.NoError(t, err)
	assert.Equal(t, reloaded, doctor)
	mockRepo.AssertExpectations(t)
}

func TestUpdateDoctor_RejectsEmptyPatch(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	_, err := svc.UpdateDoctor(context.Background(), "d-1", map[string]interface{}{"unknown": true})

	var fieldErr InvalidFieldError
	assert.ErrorAs(t, err, &fieldErr)
	mockRepo.AssertNotCalled(t, "UpdateSet", mock.Anything, mock.Anything)
}

func TestUpdateDoctor_RejectsFractionalExperience(t *testing.T) {
	svc, _ := setupDirectoryService()

	_, err := svc.UpdateDoctor(context.Background(), "d-1", map[string]interface{}{"yearsExperience": 10.5})

	var fieldErr InvalidFieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "yearsExperience", fieldErr.Field)
}

func TestDeleteDoctor_RemovesRecord(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	mockRepo.On("Delete", "d-1").Return(nil)

	err := svc.DeleteDoctor(context.Background(), "d-1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestDeleteDoctor_UnknownDoctor(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	mockRepo.On("Delete", "ghost").Return(doctorRepo.ErrDoctorNotFound)

	err := svc.DeleteDoctor(context.Background(), "ghost")

	assert.ErrorIs(t, err, doctorRepo.ErrDoctorNotFound)
}

func TestGetAllDoctors_ProjectsListingView(t *testing.T) {
	svc, mockRepo := setupDirectoryService()

	snapshot := []models.Doctor{
		{ID: "d-1", Name: "Dr. Adams", Specialization: "Cardiology", Location: "Nairobi", YearsExperience: 12, AverageRating: 4.2, ReviewCount: 10},
		{ID: "d-2", Name: "Dr. Brook", Specialization: "Dermatology", Location: "Mombasa", YearsExperience: 4},
	}
	mockRepo.On("GetAll").Return(snapshot, nil)

	dtos, err := svc.GetAllDoctors(context.Background())

	assert.NoError(t, err)
	assert.Len(t, dtos, 2)
	assert.Equal(t, snapshot[0].ToDTO(), dtos[0])
	assert.Equal(t, snapshot[1].ToDTO(), dtos[1])
}
