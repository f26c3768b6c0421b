package hotel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/config"
	"github.com/dumeirei/hotel-booking-backend/internal/common/database"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// serviceNow 服务测试的固定时钟：2025-06-01 10:00 UTC
var serviceNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Open(&config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

var fixtureSeq atomic.Int64

// seedRoom 创建营业中酒店的一间房，120 元一晚，最多 2 人
func seedRoom(t *testing.T, db *gorm.DB) *models.Room {
	hotel := &models.Hotel{Name: "测试酒店", City: "上海", Address: "南京东路 1 号"}
	require.NoError(t, db.Create(hotel).Error)

	roomType := &models.RoomType{Name: fmt.Sprintf("大床房-%d", fixtureSeq.Add(1)), MaxGuests: 2}
	require.NoError(t, db.Create(roomType).Error)

	room := &models.Room{
		HotelID:       hotel.ID,
		RoomTypeID:    roomType.ID,
		RoomNo:        "1001",
		PricePerNight: decimal.RequireFromString("120.00"),
		IsAvailable:   true,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedUser(t *testing.T, db *gorm.DB, phone string) *models.User {
	user := &models.User{Nickname: "旅客"}
	if phone != "" {
		user.Phone = &phone
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type notification struct {
	event     string
	bookingNo string
	status    models.BookingStatusCode
}

// recordingNotifier 记录收到的通知
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) Notify(_ context.Context, event string, b *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{event, b.BookingNo, b.StatusCode})
}

func (n *recordingNotifier) Events() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.events...)
}

type testEnv struct {
	db       *gorm.DB
	room     *models.Room
	bookings *repository.BookingRepository
	rooms    *repository.RoomRepository
	notifier *recordingNotifier
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	service  *BookingService
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	db := setupTestDB(t)
	env := &testEnv{
		db:       db,
		room:     seedRoom(t, db),
		bookings: repository.NewBookingRepository(db),
		rooms:    repository.NewRoomRepository(db),
		notifier: &recordingNotifier{},
		registry: prometheus.NewRegistry(),
	}
	env.metrics = metrics.New("test", env.registry)

	opts = append([]Option{
		WithClock(func() time.Time { return serviceNow }),
		WithLocation(time.UTC),
		WithMetrics(env.metrics),
	}, opts...)
	lifecycle := NewLifecycle(env.bookings, env.notifier, env.metrics, opts...)
	env.service = NewBookingService(db, env.bookings, env.rooms, lifecycle, env.notifier, nil, opts...)
	return env
}

// book 以 userID 身份为测试房间下单
func (e *testEnv) book(userID int64, in, out string, guests int) (*BookingInfo, error) {
	return e.service.CreateBooking(context.Background(), userID, &CreateBookingRequest{
		RoomID:         FlexibleID(fmt.Sprintf("%d", e.room.ID)),
		CheckInDate:    in,
		CheckOutDate:   out,
		NumberOfGuests: guests,
	})
}

// counterValue 累加标签匹配的计数器值
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	require.NoError(t, err)
	var sum float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if v, ok := labels[lp.GetName()]; ok && v != lp.GetValue() {
					continue next
				}
			}
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}
