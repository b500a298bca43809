package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"github.com/h4ks-com/farmstead/internal/services"
)

type CropHandler struct {
	cropService *services.CropService
}

func NewCropHandler(cropService *services.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

type CreateCropRequest struct {
	LandID              uint        `json:"land_id" binding:"required"`
	CropName            string      `json:"crop_name" binding:"required"`
	Variety             *string     `json:"variety"`
	PlantingDate        *patch.Date `json:"planting_date" binding:"required" swaggertype:"string" example:"2024-03-01"`
	ExpectedHarvestDate *patch.Date `json:"expected_harvest_date" binding:"required" swaggertype:"string" example:"2024-07-01"`
	ExpectedYield       *float64    `json:"expected_yield"`
	Notes               *string     `json:"notes"`
}

type CropResponse struct {
	ID                  uint       `json:"id"`
	LandID              uint       `json:"land_id"`
	CropName            string     `json:"crop_name"`
	Variety             *string    `json:"variety"`
	PlantingDate        time.Time  `json:"planting_date"`
	ExpectedHarvestDate time.Time  `json:"expected_harvest_date"`
	ActualHarvestDate   *time.Time `json:"actual_harvest_date"`
	Status              string     `json:"status"`
	ExpectedYield       *float64   `json:"expected_yield"`
	ActualYield         *float64   `json:"actual_yield"`
	Notes               *string    `json:"notes"`
}

func newCropResponse(crop *models.Crop) CropResponse {
	return CropResponse{
		ID:                  crop.ID,
		LandID:              crop.LandID,
		CropName:            crop.CropName,
		Variety:             crop.Variety,
		PlantingDate:        crop.PlantingDate,
		ExpectedHarvestDate: crop.ExpectedHarvestDate,
		ActualHarvestDate:   crop.ActualHarvestDate,
		Status:              crop.Status,
		ExpectedYield:       crop.ExpectedYield,
		ActualYield:         crop.ActualYield,
		Notes:               crop.Notes,
	}
}

// CreateCrop godoc
// @Summary Plan crop
// @Description Record a planting on a land; status starts as Planned
// @Tags crops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCropRequest true "Crop"
// @Success 200 {object} CropResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /crops [post]
func (h *CropHandler) CreateCrop(c *gin.Context) {
	var req CreateCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	crop, err := h.cropService.CreateCrop(c.Request.Context(), services.CropInput{
		LandID:              req.LandID,
		CropName:            req.CropName,
		Variety:             req.Variety,
		PlantingDate:        req.PlantingDate.Time,
		ExpectedHarvestDate: req.ExpectedHarvestDate.Time,
		ExpectedYield:       req.ExpectedYield,
		Notes:               req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCropResponse(crop))
}

// ListCrops godoc
// @Summary List crops
// @Tags crops
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} CropResponse
// @Router /crops [get]
func (h *CropHandler) ListCrops(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	crops, err := h.cropService.ListCrops(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(crops, newCropResponse))
}

// GetCrop godoc
// @Summary Get crop
// @Tags crops
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Success 200 {object} CropResponse
// @Failure 404 {object} ErrorResponse
// @Router /crops/{id} [get]
func (h *CropHandler) GetCrop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	crop, err := h.cropService.GetCrop(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCropResponse(crop))
}

// LandCrops godoc
// @Summary Crops on a land
// @Tags crops
// @Produce json
// @Security BearerAuth
// @Param id path int true "Land ID"
// @Success 200 {array} CropResponse
// @Router /crops/land/{id} [get]
func (h *CropHandler) LandCrops(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	crops, err := h.cropService.LandCrops(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(crops, newCropResponse))
}

// UpcomingCrops godoc
// @Summary Crop plan for the next four months
// @Description Crops planted from now on whose expected harvest is within 120 days
// @Tags crops
// @Produce json
// @Security BearerAuth
// @Param id path int true "Land ID"
// @Success 200 {array} CropResponse
// @Router /crops/land/{id}/4months [get]
func (h *CropHandler) UpcomingCrops(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	crops, err := h.cropService.UpcomingCrops(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(crops, newCropResponse))
}

// UpdateCrop godoc
// @Summary Update crop
// @Description Change only the supplied fields
// @Tags crops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Param request body services.CropPatch true "Fields to change"
// @Success 200 {object} CropResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /crops/{id} [put]
func (h *CropHandler) UpdateCrop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var p services.CropPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}

	crop, err := h.cropService.UpdateCrop(c.Request.Context(), id, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCropResponse(crop))
}

// DeleteCrop godoc
// @Summary Delete crop
// @Tags crops
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Success 200 {object} CropResponse
// @Failure 404 {object} ErrorResponse
// @Router /crops/{id} [delete]
func (h *CropHandler) DeleteCrop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	crop, err := h.cropService.DeleteCrop(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCropResponse(crop))
}
