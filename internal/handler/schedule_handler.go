package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enare-prep-api/internal/dto"
	"github.com/noah-isme/enare-prep-api/internal/models"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
	"github.com/noah-isme/enare-prep-api/pkg/response"
)

type scheduleService interface {
	Queue(ctx context.Context, today models.Date) (*dto.ScheduleResponse, error)
}

// ScheduleHandler handles the review-queue endpoint.
type ScheduleHandler struct {
	service scheduleService
	now     func() time.Time
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc, now: time.Now}
}

// Queue godoc
// @Summary Review queue ranked by urgency
// @Tags Schedule
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Queue(c *gin.Context) {
	today := models.DateOf(h.now())
	if raw := c.Query("date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
			return
		}
		today = parsed
	}

	queue, err := h.service.Queue(c.Request.Context(), today)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, queue, nil)
}
