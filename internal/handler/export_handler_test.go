package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enare-prep-api/internal/service"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

type fakeExportService struct {
	report     *service.ReportFile
	err        error
	lastFormat string
}

func (f *fakeExportService) HistoryReport(_ context.Context, format string) (*service.ReportFile, error) {
	f.lastFormat = format
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func newExportRouter(svc *fakeExportService) *gin.Engine {
	h := NewExportHandler(svc)
	r := gin.New()
	r.GET("/exports/history", h.History)
	return r
}

func TestExportHandlerHistoryDefaultsToCSV(t *testing.T) {
	svc := &fakeExportService{report: &service.ReportFile{
		Name:        "history_2024-03-15_ab12.csv",
		ContentType: "text/csv",
		Data:        []byte("Date,Subject\n"),
	}}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/history", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ReportFormatCSV, svc.lastFormat)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="history_2024-03-15_ab12.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Date,Subject\n", w.Body.String())
}

func TestExportHandlerHistoryForwardsFormat(t *testing.T) {
	svc := &fakeExportService{report: &service.ReportFile{
		Name:        "history_2024-03-15_ab12.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	}}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/history?format=pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pdf", svc.lastFormat)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestExportHandlerHistoryUnknownFormat(t *testing.T) {
	svc := &fakeExportService{err: appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/history?format=xlsx", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}
