package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// BookingStatusRepository 预订状态展示数据仓储
type BookingStatusRepository struct {
	db *gorm.DB
}

// NewBookingStatusRepository 创建预订状态仓储
func NewBookingStatusRepository(db *gorm.DB) *BookingStatusRepository {
	return &BookingStatusRepository{db: db}
}

// List 按排序获取全部状态
func (r *BookingStatusRepository) List(ctx context.Context) ([]*models.BookingStatus, error) {
	var statuses []*models.BookingStatus
	err := r.db.WithContext(ctx).Order("sort ASC").Find(&statuses).Error
	return statuses, err
}
