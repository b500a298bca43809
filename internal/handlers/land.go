package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/services"
)

type LandHandler struct {
	landService *services.LandService
}

func NewLandHandler(landService *services.LandService) *LandHandler {
	return &LandHandler{landService: landService}
}

type CreateLandRequest struct {
	Name      string   `json:"name" binding:"required"`
	Location  string   `json:"location" binding:"required"`
	Size      *float64 `json:"size" binding:"required"`
	SoilType  *string  `json:"soil_type"`
	TaxAmount *float64 `json:"tax_amount"`
	FarmerID  *uint    `json:"farmer_id"`
}

type LandResponse struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Size      float64  `json:"size"`
	SoilType  *string  `json:"soil_type"`
	TaxAmount *float64 `json:"tax_amount"`
	FarmerID  *uint    `json:"farmer_id"`
}

func newLandResponse(land *models.Land) LandResponse {
	return LandResponse{
		ID:        land.ID,
		Name:      land.Name,
		Location:  land.Location,
		Size:      land.Size,
		SoilType:  land.SoilType,
		TaxAmount: land.TaxAmount,
		FarmerID:  land.FarmerID,
	}
}

// CreateLand godoc
// @Summary Create land
// @Tags lands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLandRequest true "Land"
// @Success 200 {object} LandResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /lands [post]
func (h *LandHandler) CreateLand(c *gin.Context) {
	var req CreateLandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	land, err := h.landService.CreateLand(c.Request.Context(), services.LandInput{
		Name:      req.Name,
		Location:  req.Location,
		Size:      *req.Size,
		SoilType:  req.SoilType,
		TaxAmount: req.TaxAmount,
		FarmerID:  req.FarmerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLandResponse(land))
}

// ListLands godoc
// @Summary List lands
// @Tags lands
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} LandResponse
// @Router /lands [get]
func (h *LandHandler) ListLands(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	lands, err := h.landService.ListLands(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(lands, newLandResponse))
}

// GetLand godoc
// @Summary Get land
// @Tags lands
// @Produce json
// @Security BearerAuth
// @Param id path int true "Land ID"
// @Success 200 {object} LandResponse
// @Failure 404 {object} ErrorResponse
// @Router /lands/{id} [get]
func (h *LandHandler) GetLand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	land, err := h.landService.GetLand(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLandResponse(land))
}

// UpdateLand godoc
// @Summary Update land
// @Description Change only the supplied fields; null clears soil_type, tax_amount or farmer_id
// @Tags lands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Land ID"
// @Param request body services.LandPatch true "Fields to change"
// @Success 200 {object} LandResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /lands/{id} [put]
func (h *LandHandler) UpdateLand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var p services.LandPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}

	land, err := h.landService.UpdateLand(c.Request.Context(), id, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLandResponse(land))
}

// AssignFarmer godoc
// @Summary Assign land to farmer
// @Tags lands
// @Produce json
// @Security BearerAuth
// @Param id path int true "Land ID"
// @Param farmer_id path int true "Farmer ID"
// @Success 200 {object} LandResponse
// @Failure 404 {object} ErrorResponse
// @Router /lands/{id}/assign/{farmer_id} [put]
func (h *LandHandler) AssignFarmer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	farmerID, ok := parseID(c, "farmer_id")
	if !ok {
		return
	}

	land, err := h.landService.AssignFarmer(c.Request.Context(), id, farmerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLandResponse(land))
}

// DeleteLand godoc
// @Summary Delete land
// @Tags lands
// @Produce json
// @Security BearerAuth
// @Param id path int true "Land ID"
// @Success 200 {object} LandResponse
// @Failure 404 {object} ErrorResponse
// @Router /lands/{id} [delete]
func (h *LandHandler) DeleteLand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	land, err := h.landService.DeleteLand(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLandResponse(land))
}
