package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service   string
	functions []string
}

func NewHealthHandler(service string, functions []string) *HealthHandler {
	return &HealthHandler{service: service, functions: functions}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   h.service,
		"functions": h.functions,
		"timestamp": time.Now().Unix(),
	})
}
