package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/services"
)

type FarmerHandler struct {
	farmerService *services.FarmerService
}

func NewFarmerHandler(farmerService *services.FarmerService) *FarmerHandler {
	return &FarmerHandler{farmerService: farmerService}
}

type FarmerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type FarmerResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func newFarmerResponse(farmer *models.Farmer) FarmerResponse {
	return FarmerResponse{
		ID:      farmer.ID,
		Name:    farmer.Name,
		Phone:   farmer.Phone,
		Address: farmer.Address,
	}
}

func (r FarmerRequest) input() services.FarmerInput {
	return services.FarmerInput{Name: r.Name, Phone: r.Phone, Address: r.Address}
}

// CreateFarmer godoc
// @Summary Create farmer
// @Tags farmers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FarmerRequest true "Farmer"
// @Success 200 {object} FarmerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /farmers [post]
func (h *FarmerHandler) CreateFarmer(c *gin.Context) {
	var req FarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	farmer, err := h.farmerService.CreateFarmer(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newFarmerResponse(farmer))
}

// ListFarmers godoc
// @Summary List farmers
// @Tags farmers
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} FarmerResponse
// @Failure 401 {object} ErrorResponse
// @Router /farmers [get]
func (h *FarmerHandler) ListFarmers(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	farmers, err := h.farmerService.ListFarmers(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(farmers, newFarmerResponse))
}

// GetFarmer godoc
// @Summary Get farmer
// @Tags farmers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Farmer ID"
// @Success 200 {object} FarmerResponse
// @Failure 404 {object} ErrorResponse
// @Router /farmers/{id} [get]
func (h *FarmerHandler) GetFarmer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	farmer, err := h.farmerService.GetFarmer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newFarmerResponse(farmer))
}

// UpdateFarmer godoc
// @Summary Replace farmer
// @Tags farmers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Farmer ID"
// @Param request body FarmerRequest true "Farmer"
// @Success 200 {object} FarmerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farmers/{id} [put]
func (h *FarmerHandler) UpdateFarmer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req FarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	farmer, err := h.farmerService.UpdateFarmer(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newFarmerResponse(farmer))
}

// DeleteFarmer godoc
// @Summary Delete farmer
// @Tags farmers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Farmer ID"
// @Success 200 {object} FarmerResponse
// @Failure 404 {object} ErrorResponse
// @Router /farmers/{id} [delete]
func (h *FarmerHandler) DeleteFarmer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	farmer, err := h.farmerService.DeleteFarmer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newFarmerResponse(farmer))
}

// FarmerTasks godoc
// @Summary Tasks of a farmer
// @Tags farmers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Farmer ID"
// @Success 200 {array} TaskResponse
// @Failure 404 {object} ErrorResponse
// @Router /farmers/{id}/tasks [get]
func (h *FarmerHandler) FarmerTasks(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.farmerService.FarmerTasks(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(tasks, newTaskResponse))
}

// FarmerLands godoc
// @Summary Lands of a farmer
// @Tags farmers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Farmer ID"
// @Success 200 {array} LandResponse
// @Failure 404 {object} ErrorResponse
// @Router /farmers/{id}/lands [get]
func (h *FarmerHandler) FarmerLands(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	lands, err := h.farmerService.FarmerLands(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(lands, newLandResponse))
}
