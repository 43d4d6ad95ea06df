package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"petstore/internal/core/model/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{
		Success:   true,
		Message:   "Service is healthy",
		Timestamp: time.Now().UTC(),
	})
}
