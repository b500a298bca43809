package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/services"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

type AssetRequest struct {
	Name  string   `json:"name" binding:"required"`
	Type  string   `json:"type" binding:"required"`
	Value *float64 `json:"value" binding:"required"`
}

type AssetResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Value        float64   `json:"value"`
	PurchaseDate time.Time `json:"purchase_date"`
}

func newAssetResponse(asset *models.Asset) AssetResponse {
	return AssetResponse{
		ID:           asset.ID,
		Name:         asset.Name,
		Type:         asset.Type,
		Value:        asset.Value,
		PurchaseDate: asset.PurchaseDate,
	}
}

// CreateAsset godoc
// @Summary Create asset
// @Description The purchase date is set to the current time
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssetRequest true "Asset"
// @Success 200 {object} AssetResponse
// @Failure 400 {object} ErrorResponse
// @Router /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), req.Name, req.Type, *req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAssetResponse(asset))
}

// ListAssets godoc
// @Summary List assets
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} AssetResponse
// @Router /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	assets, err := h.assetService.ListAssets(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(assets, newAssetResponse))
}

// GetAsset godoc
// @Summary Get asset
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} AssetResponse
// @Failure 404 {object} ErrorResponse
// @Router /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	asset, err := h.assetService.GetAsset(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAssetResponse(asset))
}

// DeleteAsset godoc
// @Summary Delete asset
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} AssetResponse
// @Failure 404 {object} ErrorResponse
// @Router /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	asset, err := h.assetService.DeleteAsset(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAssetResponse(asset))
}
