package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enare-prep-api/internal/models"
	"github.com/noah-isme/enare-prep-api/internal/service"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
	"github.com/noah-isme/enare-prep-api/pkg/response"
)

type studyService interface {
	Record(ctx context.Context, req service.RecordStudyRequest) (*models.StudySession, error)
	History(ctx context.Context, filter service.HistoryFilter) ([]models.StudySession, *models.Pagination, error)
}

// StudyHandler handles study-session endpoints.
type StudyHandler struct {
	service studyService
}

// NewStudyHandler constructs a study handler.
func NewStudyHandler(svc studyService) *StudyHandler {
	return &StudyHandler{service: svc}
}

// Create godoc
// @Summary Record a study session
// @Tags Studies
// @Accept json
// @Produce json
// @Param payload body service.RecordStudyRequest true "Study payload"
// @Success 201 {object} response.Envelope
// @Router /studies [post]
func (h *StudyHandler) Create(c *gin.Context) {
	var req service.RecordStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	session, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// List godoc
// @Summary Browse the study history
// @Tags Studies
// @Produce json
// @Param subject query string false "Filter by subject name"
// @Param topic query string false "Filter by topic"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /studies [get]
func (h *StudyHandler) List(c *gin.Context) {
	var filter service.HistoryFilter
	filter.Subject = strings.TrimSpace(c.Query("subject"))
	filter.Topic = strings.TrimSpace(c.Query("topic"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	sessions, pagination, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, pagination)
}
