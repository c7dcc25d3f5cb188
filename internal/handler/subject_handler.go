package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enare-prep-api/internal/models"
	"github.com/noah-isme/enare-prep-api/internal/service"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
	"github.com/noah-isme/enare-prep-api/pkg/response"
)

type catalogService interface {
	List(ctx context.Context) ([]models.Subject, error)
	AddCustom(ctx context.Context, req service.AddSubjectRequest) (*models.Subject, error)
	DeleteCustom(ctx context.Context, id int) error
}

// SubjectHandler handles catalog endpoints.
type SubjectHandler struct {
	service catalogService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc catalogService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List the combined subject catalog
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Create godoc
// @Summary Add a custom subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body service.AddSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.AddSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.service.AddCustom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Delete godoc
// @Summary Delete a custom subject
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 204
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subject id must be an integer"))
		return
	}
	if err := h.service.DeleteCustom(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
