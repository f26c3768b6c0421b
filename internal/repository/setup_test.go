package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/config"
	"github.com/dumeirei/hotel-booking-backend/internal/common/database"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

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

var seq atomic.Int64

func nextSeq() int64 {
	return seq.Add(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedRoom 创建酒店、房型和一间可预订的房间
func seedRoom(t *testing.T, db *gorm.DB) *models.Room {
	hotel := &models.Hotel{Name: "测试酒店", City: "上海", Address: "南京东路 1 号"}
	require.NoError(t, db.Create(hotel).Error)

	roomType := &models.RoomType{Name: fmt.Sprintf("双床房-%d", nextSeq()), MaxGuests: 2}
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

func seedBooking(t *testing.T, db *gorm.DB, roomID, userID int64, in, out time.Time, status models.BookingStatusCode) *models.Booking {
	b := &models.Booking{
		BookingNo:      fmt.Sprintf("BTEST%06d", nextSeq()),
		UserID:         userID,
		RoomID:         roomID,
		CheckInDate:    in,
		CheckOutDate:   out,
		NumberOfGuests: 1,
		Nights:         int(out.Sub(in).Hours() / 24),
		TotalPrice:     decimal.NewFromInt(100),
		FinalPrice:     decimal.NewFromInt(100),
		StatusCode:     status,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}
