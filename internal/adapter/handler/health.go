package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type dbPinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db    dbPinger
	redis *redis.Client
}

// NewHealthHandler accepts a nil redis client when the quote cache is off.
func NewHealthHandler(db dbPinger, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"postgres": "ok"}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}

	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}
	}

	if !healthy {
		errorWithDetails(c, http.StatusServiceUnavailable, "DEPENDENCY_FAILURE", "service unhealthy", checks)
		return
	}
	success(c, http.StatusOK, checks)
}
