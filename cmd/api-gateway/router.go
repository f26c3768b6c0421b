// Package main 是应用程序入口
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/dumeirei/hotel-booking-backend/docs"
	"github.com/dumeirei/hotel-booking-backend/internal/common/config"
	"github.com/dumeirei/hotel-booking-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	adminHandler "github.com/dumeirei/hotel-booking-backend/internal/handler/admin"
	hotelHandler "github.com/dumeirei/hotel-booking-backend/internal/handler/hotel"
	"github.com/dumeirei/hotel-booking-backend/internal/middleware"
)

// 请求体上限
const maxBodySize = 1 << 20

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	m *metrics.Metrics,
	svc *services,
) {
	// 创建 JWT 管理器，只用于校验令牌
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:           cfg.JWT.Secret,
		AccessExpireTime: cfg.JWT.AccessTokenDuration(),
		Issuer:           cfg.JWT.Issuer,
	})

	// 初始化处理器
	hotelH := hotelHandler.NewHotelHandler(svc.hotel)
	bookingH := hotelHandler.NewBookingHandler(svc.booking)
	adminH := adminHandler.NewHotelHandler(svc.admin)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName, "/health", "/ping", "/ready", cfg.Metrics.Path))
	}
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins...))
	r.Use(middleware.AccessLog(logger, cfg.Metrics.Path))
	if m != nil {
		r.Use(m.Middleware())
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metrics.Handler(nil))
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "接口不存在")
	})

	// API v1 路由组
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequestSizeLimiter(maxBodySize))
	if cfg.RateLimit.Enabled {
		v1.Use(middleware.IPRateLimit(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.WindowDuration()))
	}
	{
		// 公开接口（无需认证）
		v1.GET("/hotels/:id/rooms", hotelH.ListRooms)
		v1.GET("/rooms/:id", hotelH.GetRoom)
		v1.GET("/rooms/:id/quote", hotelH.Quote)
		v1.GET("/booking-statuses", hotelH.ListBookingStatuses)

		// 需要用户登录
		user := v1.Group("")
		user.Use(middleware.UserAuth(jwtManager))
		{
			booking := cfg.Business.Booking
			user.POST("/bookings",
				middleware.UserRateLimit(redisClient, "booking_create", booking.CreateRateLimit, booking.CreateRateWindowDuration()),
				bookingH.CreateBooking,
			)
			user.GET("/bookings", bookingH.ListBookings)
			user.GET("/bookings/:id", bookingH.GetBooking)
			user.POST("/bookings/:id/cancel", bookingH.CancelBooking)
			user.GET("/bookings/:id/voucher", bookingH.GetVoucher)
		}
	}

	// 管理端路由组
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequestSizeLimiter(maxBodySize))
	admin.Use(middleware.AdminAuth(jwtManager))
	{
		admin.GET("/bookings/:id", adminH.GetBooking)
		admin.POST("/bookings/:id/confirm", adminH.ConfirmBooking)
		admin.POST("/bookings/:id/reject", adminH.RejectBooking)
		admin.POST("/bookings/:id/complete", adminH.CompleteBooking)
		admin.PUT("/rooms/:id/availability", adminH.SetRoomAvailability)
	}
}
