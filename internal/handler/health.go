package handler

import (
	"keyimport-core/internal/handler/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports process liveness.
func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
