package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Service string
	Version string
}

func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{Service: service, Version: version}
}

// Health is a liveness check; it does not touch dependencies. The body is a
// bare object rather than the API envelope so checkers can read "status".
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   h.Service,
		"timestamp": time.Now().UTC(),
		"version":   h.Version,
	})
}
