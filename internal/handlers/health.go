// internal/handlers/health.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marketloop/recommendation-service/internal/database"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// GET /health
//
// Store failures surface as a degraded status with the failure detail, never
// as a request error.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		c.JSON(http.StatusOK, HealthResponse{
			Status:   "unhealthy",
			Database: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}
