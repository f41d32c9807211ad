package controller

import (
	"net/http"
	"time"

	"backend/service"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	directory *service.DirectoryService
	started   time.Time
}

func NewHealthController(directory *service.DirectoryService) *HealthController {
	return &HealthController{directory: directory, started: time.Now()}
}

// RegisterRoutes sets up the health check endpoint.
func (ctrl *HealthController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", ctrl.healthCheck)
	router.HEAD("/health", ctrl.healthCheck)
}

// healthCheck reports process liveness and directory snapshot state.
func (ctrl *HealthController) healthCheck(c *gin.Context) {
	snapshot := ctrl.directory.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"timestamp":      time.Now().UTC(),
		"uptime_seconds": time.Since(ctrl.started).Seconds(),
		"directory": gin.H{
			"companies": len(snapshot.Records),
			"loaded_at": snapshot.LoadedAt,
		},
	})
}
