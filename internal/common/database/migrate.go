package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// BookingOverlapConstraint 同一房间有效预订日期不得重叠的排他约束
const BookingOverlapConstraint = "bookings_room_no_overlap"

// Models 需要迁移的模型
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Room{},
		&models.BookingStatus{},
		&models.Booking{},
	}
}

// Migrate 迁移表结构并初始化状态数据
// Postgres 上额外安装排他约束
func Migrate(ctx context.Context, conn *gorm.DB) error {
	conn = conn.WithContext(ctx)

	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := SeedBookingStatuses(conn); err != nil {
		return err
	}

	if IsPostgres(conn) {
		if err := installOverlapConstraint(conn); err != nil {
			return err
		}
	}
	return nil
}

// SeedBookingStatuses 写入状态展示数据，已存在的行保持不变
func SeedBookingStatuses(conn *gorm.DB) error {
	rows := models.DefaultBookingStatuses()
	err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("seed booking statuses: %w", err)
	}
	return nil
}

func installOverlapConstraint(conn *gorm.DB) error {
	if err := conn.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("create btree_gist: %w", err)
	}

	var exists bool
	err := conn.Raw("SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)", BookingOverlapConstraint).
		Scan(&exists).Error
	if err != nil {
		return fmt.Errorf("check overlap constraint: %w", err)
	}
	if exists {
		return nil
	}

	ddl := fmt.Sprintf(`ALTER TABLE bookings ADD CONSTRAINT %s EXCLUDE USING gist (
		room_id WITH =,
		daterange(check_in_date, check_out_date, '[)') WITH &&
	) WHERE (status NOT IN ('%s', '%s'))`,
		BookingOverlapConstraint, models.BookingStatusCancelled, models.BookingStatusRejected)

	if err := conn.Exec(ddl).Error; err != nil {
		return fmt.Errorf("add overlap constraint: %w", err)
	}
	return nil
}
