package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/database"
	"gorm.io/gorm"
)

type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Root godoc
// @Summary Welcome
// @Tags public
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (h *PublicHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Welcome to Farm Management API"})
}

// Health godoc
// @Summary Health check
// @Description Reports whether the database answers
// @Tags public
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (h *PublicHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		c.Error(err)
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Database: "down"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "up"})
}
