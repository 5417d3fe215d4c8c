package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string `json:"status"`
	State     string `json:"state"`
	Timestamp string `json:"timestamp"`
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *Controller) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		State:     c.marketData.Snapshot().State.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
