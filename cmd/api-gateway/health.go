package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/cache"
	"github.com/dumeirei/hotel-booking-backend/internal/common/database"
)

// readyTimeout 单项依赖检查的超时
const readyTimeout = 3 * time.Second

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp int64             `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// healthHandler 健康检查（简单版）
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Unix(),
	})
}

// pingHandler Ping 检查
func pingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// readyHandler 就绪检查（检查数据库与 Redis）
func readyHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := map[string]string{
			"database": checkStatus(c.Request.Context(), func(ctx context.Context) error {
				return database.Ping(ctx, db)
			}),
			"redis": checkStatus(c.Request.Context(), func(ctx context.Context) error {
				return cache.Ping(ctx, redisClient)
			}),
		}

		status := http.StatusOK
		resp := HealthResponse{Status: "ready", Timestamp: time.Now().Unix(), Checks: checks}
		for _, v := range checks {
			if v != "ok" {
				status = http.StatusServiceUnavailable
				resp.Status = "not ready"
				break
			}
		}
		c.JSON(status, resp)
	}
}

func checkStatus(parent context.Context, check func(ctx context.Context) error) string {
	ctx, cancel := context.WithTimeout(parent, readyTimeout)
	defer cancel()
	if err := check(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
