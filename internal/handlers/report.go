package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary godoc
// @Summary Farm summary
// @Description Counts and totals across farmers, tasks, inventory, transactions and assets
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Summary
// @Failure 401 {object} ErrorResponse
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Farmers godoc
// @Summary Task counts per farmer
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.FarmerReport
// @Router /reports/farmers [get]
func (h *ReportHandler) Farmers(c *gin.Context) {
	farmers, err := h.reportService.Farmers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, farmers)
}

// Items godoc
// @Summary Stock and movement per item
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.ItemReport
// @Router /reports/items [get]
func (h *ReportHandler) Items(c *gin.Context) {
	items, err := h.reportService.Items(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// TransactionSummary godoc
// @Summary Buy and sell totals
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.TransactionTypeSummary
// @Router /reports/transactions/summary [get]
func (h *ReportHandler) TransactionSummary(c *gin.Context) {
	summary, err := h.reportService.TransactionSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
