package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/config"
	"github.com/dumeirei/hotel-booking-backend/internal/common/database"
	"github.com/dumeirei/hotel-booking-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/pkg/sms"
)

type gateway struct {
	engine *gin.Engine
	cfg    *config.Config
	db     *gorm.DB
	mr     *miniredis.Miniredis
	room   *models.Room
	sms    *sms.MockSender
}

func setupGateway(t *testing.T) *gateway {
	gin.SetMode(gin.TestMode)

	cfg, err := config.Parse("")
	require.NoError(t, err)
	cfg.Business.Booking.CreateRateLimit = 3

	db, err := database.Open(&config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	hotel := &models.Hotel{Name: "网关酒店", City: "成都", Address: "春熙路"}
	require.NoError(t, db.Create(hotel).Error)
	roomType := &models.RoomType{Name: "双床房", MaxGuests: 2}
	require.NoError(t, db.Create(roomType).Error)
	room := &models.Room{HotelID: hotel.ID, RoomTypeID: roomType.ID, RoomNo: "1201",
		PricePerNight: decimal.NewFromInt(200), IsAvailable: true}
	require.NoError(t, db.Create(room).Error)

	sender := sms.NewMockSender()
	m := metrics.New("gateway_test", prometheus.NewRegistry())
	svc := newServices(cfg, db, redisClient, m, nil, nil, sender)

	engine := gin.New()
	setupRouter(engine, cfg, zap.NewNop(), db, redisClient, m, svc)

	return &gateway{engine: engine, cfg: cfg, db: db, mr: mr, room: room, sms: sender}
}

func (g *gateway) token(t *testing.T, userID int64, userType string) string {
	manager := jwt.NewManager(&jwt.Config{
		Secret:           g.cfg.JWT.Secret,
		AccessExpireTime: time.Hour,
		Issuer:           g.cfg.JWT.Issuer,
	})
	token, _, err := manager.GenerateAccessToken(userID, userType, "")
	require.NoError(t, err)
	return token
}

func (g *gateway) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	g.engine.ServeHTTP(w, req)
	return w
}

// futureDate 业务时区下若干天后的日期
func (g *gateway) futureDate(days int) string {
	return time.Now().In(g.cfg.Business.Booking.Location()).AddDate(0, 0, days).Format("2006-01-02")
}

func TestRouter_OpsEndpoints(t *testing.T) {
	g := setupGateway(t)

	assert.Equal(t, http.StatusOK, g.do(http.MethodGet, "/health", "", nil).Code)

	w := g.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, "pong", w.Body.String())

	w = g.do(http.MethodGet, "/ready", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ready HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ready))
	assert.Equal(t, "ok", ready.Checks["database"])
	assert.Equal(t, "ok", ready.Checks["redis"])

	assert.Equal(t, http.StatusOK, g.do(http.MethodGet, "/metrics", "", nil).Code)

	w = g.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/bookings")

	w = g.do(http.MethodGet, "/api/v1/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "接口不存在")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRouter_ReadyReportsRedisDown(t *testing.T) {
	g := setupGateway(t)
	g.mr.Close()

	w := g.do(http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_BookingFlow(t *testing.T) {
	g := setupGateway(t)

	phone := "13900000001"
	user := &models.User{Phone: &phone, Nickname: "网关旅客"}
	require.NoError(t, g.db.Create(user).Error)
	userToken := g.token(t, user.ID, jwt.UserTypeUser)
	adminToken := g.token(t, 1, jwt.UserTypeAdmin)

	body := map[string]interface{}{
		"roomId":         fmt.Sprint(g.room.ID),
		"checkInDate":    g.futureDate(10),
		"checkOutDate":   g.futureDate(12),
		"numberOfGuests": 2,
	}

	assert.Equal(t, http.StatusUnauthorized, g.do(http.MethodPost, "/api/v1/bookings", "", body).Code)
	assert.Equal(t, http.StatusForbidden, g.do(http.MethodPost, "/api/v1/bookings", adminToken, body).Code)

	w := g.do(http.MethodPost, "/api/v1/bookings", userToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pending", created.Data.Status)

	msg := g.sms.GetLastMessage()
	require.NotNil(t, msg)
	assert.Equal(t, phone, msg.Phone)

	assert.Equal(t, http.StatusConflict, g.do(http.MethodPost, "/api/v1/bookings", userToken, body).Code)

	confirmPath := fmt.Sprintf("/api/admin/bookings/%d/confirm", created.Data.ID)
	assert.Equal(t, http.StatusForbidden, g.do(http.MethodPost, confirmPath, userToken, nil).Code)
	w = g.do(http.MethodPost, confirmPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)

	w = g.do(http.MethodPut, fmt.Sprintf("/api/admin/rooms/%d/availability", g.room.ID), adminToken,
		map[string]bool{"isAvailable": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body["checkInDate"] = g.futureDate(20)
	body["checkOutDate"] = g.futureDate(21)
	w = g.do(http.MethodPost, "/api/v1/bookings", userToken, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "8103")
}

func TestRouter_CreateRateLimited(t *testing.T) {
	g := setupGateway(t)
	userToken := g.token(t, 42, jwt.UserTypeUser)

	body := map[string]interface{}{"roomId": "9999"}
	for i := 0; i < g.cfg.Business.Booking.CreateRateLimit; i++ {
		assert.Equal(t, http.StatusNotFound, g.do(http.MethodPost, "/api/v1/bookings", userToken, body).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, g.do(http.MethodPost, "/api/v1/bookings", userToken, body).Code)
}
