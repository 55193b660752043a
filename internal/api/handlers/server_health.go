package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ezcrow.dev/crowdfund/internal/pkg/logger"
)

// HealthLive handles GET /health/live.
func (s *Server) HealthLive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HealthReady handles GET /health/ready.
func (s *Server) HealthReady(c *gin.Context) {
	storage := s.contract.StorageName()
	if err := s.contract.Ping(c.Request.Context()); err != nil {
		logger.Warn("Readiness check failed", zap.String("storage", storage), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"storage": storage,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": storage})
}
