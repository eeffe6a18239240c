package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthCheck pings the backends that are configured. A nil db or cache means
// the in-memory implementation is serving that concern.
func HealthCheck(db *gorm.DB, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{
			"status":   "healthy",
			"database": "memory",
			"cache":    "memory",
		}

		if db != nil {
			body["database"] = "ok"
			sqlDB, err := db.DB()
			if err != nil {
				body["database"] = "disconnected"
				status = http.StatusServiceUnavailable
			} else if err := sqlDB.PingContext(ctx); err != nil {
				body["database"] = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}

		if cache != nil {
			body["cache"] = "ok"
			if err := cache.Ping(ctx).Err(); err != nil {
				body["cache"] = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}

		if status != http.StatusOK {
			body["status"] = "unhealthy"
		}
		c.JSON(status, body)
	}
}
