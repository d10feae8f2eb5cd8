package controllers

import (
	"context"
	"net/http"
	"time"

	"abchotels/response"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose liveness the health check reports
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type HealthController struct {
	checks map[string]Pinger
}

func NewHealthController(checks map[string]Pinger) *HealthController {
	return &HealthController{checks: checks}
}

func (ctrl *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Health godoc
// @Summary  Dependency health
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.Response
// @Failure  503  {object}  response.Response
// @Router   /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(ctrl.checks))
	healthy := true
	for name, check := range ctrl.checks {
		if err := check.PingContext(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Code: http.StatusServiceUnavailable,
			Mess: "Service degraded",
			Data: status,
		})
		return
	}
	response.Success(c, status)
}
