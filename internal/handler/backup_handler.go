package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enare-prep-api/internal/models"
	"github.com/noah-isme/enare-prep-api/internal/service"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
	"github.com/noah-isme/enare-prep-api/pkg/response"
)

// Backup uploads are small JSON files; anything bigger is rejected.
const maxBackupBytes = 10 << 20

type backupService interface {
	Export(ctx context.Context) (*models.BackupDocument, string, error)
	Import(ctx context.Context, raw []byte) (*service.ImportSummary, error)
}

// BackupHandler handles import/export of the full persisted state.
type BackupHandler struct {
	service backupService
}

// NewBackupHandler constructs a backup handler.
func NewBackupHandler(svc backupService) *BackupHandler {
	return &BackupHandler{service: svc}
}

// Export godoc
// @Summary Download a backup of all sessions and custom subjects
// @Tags Backup
// @Produce json
// @Success 200 {object} models.BackupDocument
// @Router /backup/export [get]
func (h *BackupHandler) Export(c *gin.Context) {
	doc, filename, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

// Import godoc
// @Summary Restore state from a backup file
// @Tags Backup
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupBytes))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "read backup body"))
		return
	}
	summary, err := h.service.Import(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
