// Package inventoryhttp exposes the inventory upload side channel.
package inventoryhttp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderops/shipsplit/internal/domains/inventory/application"
	apierrors "github.com/orderops/shipsplit/internal/shared/errors"
)

// Handler receives tab-separated inventory uploads and serves the persisted
// mapping back.
type Handler struct {
	service *application.Service
}

// NewHandler wires the handler with the ingestion service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart TSV file under the "file" field, replaces the
// persisted mapping, and echoes the parsed records.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("missing file upload: "+err.Error()))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("open upload: "+err.Error()))
		return
	}
	defer file.Close()

	records, err := h.service.IngestTSV(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, application.ErrMissingHeader) || errors.Is(err, application.ErrMissingColumn) {
			apierrors.Respond(c, apierrors.ErrUnprocessable.WithDetail(err.Error()))
			return
		}
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Imported %d inventory record(s).", len(records)),
		"data":    records,
	})
}

// List returns the current persisted mapping.
func (h *Handler) List(c *gin.Context) {
	records, err := h.service.Records(c.Request.Context())
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}
