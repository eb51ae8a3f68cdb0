package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/models"
	"medibook/search"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubDirectoryService cans responses and records the last search request.
type stubDirectoryService struct {
	searchCalled bool
	lastCriteria search.Criteria
	lastPage     search.Page
	searchResult *search.Result
	searchErr    error

	doctor      *models.Doctor
	doctorErr   error
	dtos        []models.DoctorDTO
	listErr     error
	lastUpdates map[string]interface{}
	updateErr   error
	deleteErr   error
}

func (s *stubDirectoryService) Search(ctx context.Context, criteria search.Criteria, page search.Page) (*search.Result, error) {
	s.searchCalled = true
	s.lastCriteria = criteria
	s.lastPage = page
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.searchResult, nil
}

func (s *stubDirectoryService) RegisterDoctor(ctx context.Context, data models.DoctorRegistrationData) (*models.Doctor, error) {
	if s.doctorErr != nil {
		return nil, s.doctorErr
	}
	return s.doctor, nil
}

func (s *stubDirectoryService) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	if s.doctorErr != nil {
		return nil, s.doctorErr
	}
	return s.doctor, nil
}

func (s *stubDirectoryService) GetAllDoctors(ctx context.Context) ([]models.DoctorDTO, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.dtos, nil
}

func (s *stubDirectoryService) UpdateDoctor(ctx context.Context, id string, updates map[string]interface{}) (*models.Doctor, error) {
	s.lastUpdates = updates
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.doctor, nil
}

func (s *stubDirectoryService) DeleteDoctor(ctx context.Context, id string) error {
	return s.deleteErr
}

func newSearchRouter(svc *stubDirectoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDoctorHandler(svc)
	r.GET("/api/doctors/search", h.SearchDoctorsHandler)
	return r
}

func doGet(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchDoctorsHandler_ParsesQueryIntoCriteria(t *testing.T) {
	svc := &stubDirectoryService{searchResult: &search.Result{Matches: []search.Match{}}}
	r := newSearchRouter(svc)

	w := doGet(t, r, "/api/doctors/search?name=adams&specialization=Cardiology&location=Nairobi"+
		"&minExperience=5&minRating=4&day=Monday&windowStart=09:00&windowEnd=10:00&page=1&pageSize=10")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.searchCalled)
	assert.Equal(t, "adams", svc.lastCriteria.Name)
	assert.Equal(t, "Cardiology", svc.lastCriteria.Specialization)
	assert.Equal(t, "Nairobi", svc.lastCriteria.Location)
	if assert.NotNil(t, svc.lastCriteria.MinExperience) {
		assert.Equal(t, 5, *svc.lastCriteria.MinExperience)
	}
	if assert.NotNil(t, svc.lastCriteria.MinRating) {
		assert.Equal(t, 4.0, *svc.lastCriteria.MinRating)
	}
	if assert.NotNil(t, svc.lastCriteria.Availability) {
		assert.Equal(t, models.Monday, svc.lastCriteria.Availability.Day)
		assert.Equal(t, 540, svc.lastCriteria.Availability.Start)
		assert.Equal(t, 600, svc.lastCriteria.Availability.End)
	}
	assert.Equal(t, search.Page{Page: 1, PageSize: 10}, svc.lastPage)
}

func TestSearchDoctorsHandler_AcceptsMinuteTimes(t *testing.T) {
	svc := &stubDirectoryService{searchResult: &search.Result{}}
	r := newSearchRouter(svc)

	w := doGet(t, r, "/api/doctors/search?day=friday&windowStart=540&windowEnd=600")

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, svc.lastCriteria.Availability) {
		assert.Equal(t, 540, svc.lastCriteria.Availability.Start)
		assert.Equal(t, 600, svc.lastCriteria.Availability.End)
	}
}

func TestSearchDoctorsHandler_DefaultsPaging(t *testing.T) {
	svc := &stubDirectoryService{searchResult: &search.Result{}}
	r := newSearchRouter(svc)

	w := doGet(t, r, "/api/doctors/search")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, search.Page{Page: 0, PageSize: defaultSearchPageSize}, svc.lastPage)
}

func TestSearchDoctorsHandler_RejectsPartialWindow(t *testing.T) {
	svc := &stubDirectoryService{searchResult: &search.Result{}}
	r := newSearchRouter(svc)

	w := doGet(t, r, "/api/doctors/search?day=monday")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "provided together")
	assert.False(t, svc.searchCalled)
}

func TestSearchDoctorsHandler_RejectsMalformedNumbers(t *testing.T) {
	svc := &stubDirectoryService{searchResult: &search.Result{}}
	r := newSearchRouter(svc)

	for _, url := range []string{
		"/api/doctors/search?minExperience=abc",
		"/api/doctors/search?minRating=high",
		"/api/doctors/search?page=one",
		"/api/doctors/search?pageSize=big",
	} {
		w := doGet(t, r, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
	assert.False(t, svc.searchCalled)
}

func TestSearchDoctorsHandler_RejectsUnknownWeekday(t *testing.T) {
	svc := &stubDirectoryService{searchResult: &search.Result{}}
	r := newSearchRouter(svc)

	w := doGet(t, r, "/api/doctors/search?day=someday&windowStart=09:00&windowEnd=10:00")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown weekday")
}

func TestSearchDoctorsHandler_MapsValidationErrorTo400(t *testing.T) {
	svc := &stubDirectoryService{searchErr: &search.ValidationError{Field: "minRating", Reason: "must be between 0 and 5"}}
	r := newSearchRouter(svc)

	w := doGet(t, r, "/api/doctors/search?minRating=4.9")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "minRating")
}

func TestSearchDoctorsHandler_MapsServiceFailureTo500(t *testing.T) {
	svc := &stubDirectoryService{searchErr: context.DeadlineExceeded}
	r := newSearchRouter(svc)

	w := doGet(t, r, "/api/doctors/search")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSearchDoctorsHandler_ReturnsEngineResult(t *testing.T) {
	rating := 4.8
	expected := &search.Result{
		Matches: []search.Match{
			{ID: "d-2", Name: "Dr. Brook", Specialization: "Cardiology", AverageRating: &rating, ReviewCount: 7},
		},
		TotalMatched: 3,
		Page:         1,
		PageSize:     1,
		HasMore:      true,
	}
	svc := &stubDirectoryService{searchResult: expected}
	r := newSearchRouter(svc)

	w := doGet(t, r, "/api/doctors/search?page=1&pageSize=1")

	assert.Equal(t, http.StatusOK, w.Code)

	var got search.Result
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *expected, got)
}
