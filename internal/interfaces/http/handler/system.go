package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	appName   string
	version   string
	startTime time.Time
}

// NewSystemHandler creates a system handler
func NewSystemHandler(appName, version string) *SystemHandler {
	return &SystemHandler{
		appName:   appName,
		version:   version,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", h.Ping)
	rg.GET("/health", h.Health)
}

// Ping responds with pong
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong"})
}

// Health reports process health and uptime
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"app":     h.appName,
		"version": h.version,
		"status":  "healthy",
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}
