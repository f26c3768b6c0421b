package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Hotel 酒店模型
type Hotel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Stars     *int      `json:"stars,omitempty"`
	City      string    `gorm:"type:varchar(50);not null;index" json:"city"`
	Address   string    `gorm:"type:varchar(255);not null" json:"address"`
	Status    int8      `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// 关联
	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}

// TableName 表名
func (Hotel) TableName() string {
	return "hotels"
}

// HotelStatus 酒店状态
const (
	HotelStatusDisabled = 0 // 禁用
	HotelStatusActive   = 1 // 正常
)

// RoomType 房型，决定可入住人数
type RoomType struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
	MaxGuests   int       `gorm:"not null;default:2" json:"maxGuests"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 表名
func (RoomType) TableName() string {
	return "room_types"
}

// Room 房间模型
// IsAvailable 是后台开关，与是否有预订无关
type Room struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID       int64           `gorm:"index;not null" json:"hotelId"`
	RoomTypeID    int64           `gorm:"index;not null" json:"roomTypeId"`
	RoomNo        string          `gorm:"type:varchar(20);not null" json:"roomNo"`
	PricePerNight decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"pricePerNight"`
	IsAvailable   bool            `gorm:"not null" json:"isAvailable"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	// 关联
	Hotel    *Hotel    `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// MaxGuests 房型容量，未加载房型时为 0
func (r *Room) MaxGuests() int {
	if r.RoomType == nil {
		return 0
	}
	return r.RoomType.MaxGuests
}
