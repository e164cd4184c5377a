package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether the API can reach postgres and redis.
// Orchestrators key off the status code; the body names each store but
// carries no connection details.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbOK := false
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			dbOK = true
		}
		redisOK := rdb.Ping(ctx).Err() == nil

		status := http.StatusOK
		if !dbOK || !redisOK {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"service": "almacen",
			"ok":      status == http.StatusOK,
			"db":      storeStatus(dbOK),
			"redis":   storeStatus(redisOK),
		})
	}
}

func storeStatus(ok bool) string {
	if ok {
		return "connected"
	}
	return "error"
}
