package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_report/internal/utils"
)

var startTime = time.Now()

const pingTimeout = 2 * time.Second

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	db    Pinger
	redis Pinger
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when Redis
// is not configured.
func NewHealthHandler(db Pinger, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth responds with database and Redis status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	if err := ping(ctx, h.db); err != nil {
		log.Warn().Err(err).Msg("health check: database unreachable")
		utils.Error(c, http.StatusServiceUnavailable, utils.MsgServiceUnavailable)
		return
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "connected"
		if err := ping(ctx, h.redis); err != nil {
			log.Warn().Err(err).Msg("health check: redis unreachable")
			redisStatus = "disconnected"
		}
	}

	utils.Success(c, gin.H{
		"status":   "healthy",
		"uptime":   int(time.Since(startTime).Seconds()),
		"database": "connected",
		"redis":    redisStatus,
	})
}

func ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.Ping(ctx)
}
