package main

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/cache"
	"github.com/dumeirei/hotel-booking-backend/internal/common/config"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/common/qrcode"
	"github.com/dumeirei/hotel-booking-backend/internal/common/tracing"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	"github.com/dumeirei/hotel-booking-backend/internal/scheduler"
	adminService "github.com/dumeirei/hotel-booking-backend/internal/service/admin"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
	"github.com/dumeirei/hotel-booking-backend/pkg/sms"
)

// statusCacheTTL 预订状态字典的缓存时间
const statusCacheTTL = 10 * time.Minute

// services 路由与后台任务共用的服务
type services struct {
	hotel   *hotelService.HotelService
	booking *hotelService.BookingService
	admin   *adminService.HotelAdminService
	tasks   *scheduler.TaskHandler
}

func newServices(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	m *metrics.Metrics,
	tracer *tracing.Tracer,
	publisher hotelService.EventPublisher,
	sender sms.Sender,
) *services {
	// 初始化仓储
	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	statusRepo := repository.NewBookingStatusRepository(db)

	loc := cfg.Business.Booking.Location()
	opts := []hotelService.Option{
		hotelService.WithLocation(loc),
		hotelService.WithMetrics(m),
		hotelService.WithTracer(tracer),
	}

	notifier := hotelService.NewEventNotifier(publisher, cfg.MQTT.TopicPrefix, sender, cfg.SMS.Templates, userRepo, m)
	lifecycle := hotelService.NewLifecycle(bookingRepo, notifier, m, opts...)
	qr := qrcode.NewGenerator(qrcode.WithSize(cfg.QRCode.Size))

	return &services{
		hotel: hotelService.NewHotelService(hotelRepo, roomRepo, bookingRepo, statusRepo,
			cache.NewJSONCache(redisClient, statusCacheTTL), opts...),
		booking: hotelService.NewBookingService(db, bookingRepo, roomRepo, lifecycle, notifier, qr, opts...),
		admin:   adminService.NewHotelAdminService(roomRepo, bookingRepo, lifecycle),
		tasks:   scheduler.NewTaskHandler(bookingRepo, lifecycle, loc),
	}
}
