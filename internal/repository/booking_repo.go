package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// BookingRepository 预订仓储
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预订仓储
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// conn 事务内使用 tx，否则使用仓储自身连接
func (r *BookingRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// Create 创建预订，tx 可为空
func (r *BookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return r.conn(ctx, tx).Create(booking).Error
}

// GetByID 根据 ID 获取预订（包含房间、房型和状态展示数据）
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room.RoomType").
		Preload("StatusInfo").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByUser 获取用户的预订列表，status 为空时不过滤状态
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, offset, limit int, status *models.BookingStatusCode) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Room.RoomType").
		Preload("StatusInfo").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListOverlapping 获取与 [checkIn, checkOut) 重叠且仍占用房间的预订
// 在创建预订的事务内调用时 tx 必须传入，保证读取与插入在同一快照
func (r *BookingRepository) ListOverlapping(ctx context.Context, tx *gorm.DB, roomID int64, checkIn, checkOut time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.conn(ctx, tx).
		Where("room_id = ?", roomID).
		Where("status NOT IN ?", models.InactiveBookingStatuses()).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Order("check_in_date ASC").
		Find(&bookings).Error
	return bookings, err
}

// Transition 条件更新状态，仅当当前状态属于 from 时生效
// 返回 false 表示预订不存在或状态已被其他请求改变
func (r *BookingRepository) Transition(ctx context.Context, id int64, from []models.BookingStatusCode, to models.BookingStatusCode, fields map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Where("status IN ?", from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListToComplete 获取离店日期早于 before 的已确认预订
func (r *BookingRepository) ListToComplete(ctx context.Context, before time.Time, limit int) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BookingStatusConfirmed).
		Where("check_out_date < ?", before).
		Order("id ASC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

// ListStalePending 获取入住日期早于 before 仍未确认的预订
func (r *BookingRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BookingStatusPending).
		Where("check_in_date < ?", before).
		Order("id ASC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}
