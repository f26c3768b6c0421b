package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dumeirei/hotel-booking-backend/internal/common/database"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// RoomRepository 房间仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create 创建房间
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// CreateType 创建房型
func (r *RoomRepository) CreateType(ctx context.Context, roomType *models.RoomType) error {
	return r.db.WithContext(ctx).Create(roomType).Error
}

// GetByIDWithType 根据 ID 获取房间（包含房型和酒店）
func (r *RoomRepository) GetByIDWithType(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("RoomType").
		Preload("Hotel").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListByHotel 获取酒店下的房间
func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Preload("RoomType").
		Where("hotel_id = ?", hotelID).
		Order("room_no ASC").
		Find(&rooms).Error
	return rooms, err
}

// GetForUpdate 在事务中获取房间（包含房型），Postgres 上锁定该行
// 同一房间的并发预订在此串行
func (r *RoomRepository) GetForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*models.Room, error) {
	query := tx.WithContext(ctx)
	if database.IsPostgres(tx) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var room models.Room
	if err := query.First(&room, id).Error; err != nil {
		return nil, err
	}

	var roomType models.RoomType
	if err := tx.WithContext(ctx).First(&roomType, room.RoomTypeID).Error; err != nil {
		return nil, err
	}
	room.RoomType = &roomType
	return &room, nil
}

// SetAvailable 修改房间的可预订开关
func (r *RoomRepository) SetAvailable(ctx context.Context, id int64, available bool) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("is_available", available).Error
}
