package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enare-prep-api/internal/models"
	"github.com/noah-isme/enare-prep-api/internal/service"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

type fakeStudyService struct {
	recorded   *models.StudySession
	recordErr  error
	sessions   []models.StudySession
	pagination *models.Pagination
	lastFilter service.HistoryFilter
}

func (f *fakeStudyService) Record(_ context.Context, _ service.RecordStudyRequest) (*models.StudySession, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	return f.recorded, nil
}

func (f *fakeStudyService) History(_ context.Context, filter service.HistoryFilter) ([]models.StudySession, *models.Pagination, error) {
	f.lastFilter = filter
	return f.sessions, f.pagination, nil
}

func newStudyRouter(svc *fakeStudyService) *gin.Engine {
	h := NewStudyHandler(svc)
	r := gin.New()
	r.GET("/studies", h.List)
	r.POST("/studies", h.Create)
	return r
}

func TestStudyHandlerCreate(t *testing.T) {
	svc := &fakeStudyService{recorded: &models.StudySession{
		ID:          1710500000000,
		SubjectID:   1,
		SubjectName: "Cardiologia",
		Topic:       "Arritmias",
		Correct:     8,
		Total:       10,
		Percentage:  80,
		Date:        models.NewDate(2024, time.March, 14),
		Performance: models.TierGood,
		NextReview:  models.NewDate(2024, time.March, 21),
	}}
	r := newStudyRouter(svc)

	body := `{"subjectId":1,"topic":"Arritmias","correct":8,"total":10,"date":"2024-03-14"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/studies", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	var session models.StudySession
	require.NoError(t, json.Unmarshal(envelope.Data, &session))
	assert.Equal(t, int64(1710500000000), session.ID)
	assert.Equal(t, "2024-03-21", session.NextReview.String())
}

func TestStudyHandlerCreateValidationError(t *testing.T) {
	svc := &fakeStudyService{recordErr: appErrors.Clone(appErrors.ErrValidation, "correct answers cannot exceed total questions")}
	r := newStudyRouter(svc)

	body := `{"subjectId":1,"topic":"Arritmias","correct":11,"total":10,"date":"2024-03-14"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/studies", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}

func TestStudyHandlerListForwardsQuery(t *testing.T) {
	svc := &fakeStudyService{
		sessions:   []models.StudySession{},
		pagination: &models.Pagination{Page: 2, PageSize: 5, TotalCount: 0},
	}
	r := newStudyRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/studies?subject=Cardiologia&topic=Arritmias&page=2&limit=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cardiologia", svc.lastFilter.Subject)
	assert.Equal(t, "Arritmias", svc.lastFilter.Topic)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 5, svc.lastFilter.PageSize)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.Page)
	assert.Equal(t, 5, envelope.Pagination.PageSize)
}

func TestStudyHandlerListDefaults(t *testing.T) {
	svc := &fakeStudyService{pagination: &models.Pagination{Page: 1, PageSize: 20}}
	r := newStudyRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/studies", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.lastFilter.Page)
	assert.Equal(t, 20, svc.lastFilter.PageSize)
	assert.Empty(t, svc.lastFilter.Subject)
}
