package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/middleware"
	"github.com/h4ks-com/farmstead/internal/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type VerifyExportResponse struct {
	Valid bool `json:"valid"`
}

// ExportLedger godoc
// @Summary Export item ledger
// @Description Export an item and its full transaction history with an HMAC signature
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} services.LedgerExport
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /items/{id}/ledger [get]
func (h *ExportHandler) ExportLedger(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	export, err := h.exportService.ExportLedger(c.Request.Context(), id, middleware.GetUser(c).Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, export)
}

// VerifyExport godoc
// @Summary Verify ledger export
// @Description Check the signature of a previously exported item ledger
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.LedgerExport true "Export with signature"
// @Success 200 {object} VerifyExportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /items/ledger/verify [post]
func (h *ExportHandler) VerifyExport(c *gin.Context) {
	var export services.LedgerExport
	if err := c.ShouldBindJSON(&export); err != nil {
		badRequest(c, err)
		return
	}

	valid, err := h.exportService.VerifyExportData(&export)
	if err != nil {
		if errors.Is(err, services.ErrInvalidExport) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyExportResponse{Valid: valid})
}
