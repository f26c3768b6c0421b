package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatusCode 预订状态码，封闭枚举
type BookingStatusCode string

// 预订状态
const (
	BookingStatusPending   BookingStatusCode = "pending"   // 待确认
	BookingStatusConfirmed BookingStatusCode = "confirmed" // 已确认
	BookingStatusCancelled BookingStatusCode = "cancelled" // 已取消
	BookingStatusRejected  BookingStatusCode = "rejected"  // 已拒绝
	BookingStatusCompleted BookingStatusCode = "completed" // 已完成
)

// BookingStatusCodes 全部状态码
var BookingStatusCodes = []BookingStatusCode{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusRejected,
	BookingStatusCompleted,
}

// Valid 是否为已知状态
func (s BookingStatusCode) Valid() bool {
	for _, code := range BookingStatusCodes {
		if s == code {
			return true
		}
	}
	return false
}

// IsTerminal 终态，之后不再有状态变更
func (s BookingStatusCode) IsTerminal() bool {
	switch s {
	case BookingStatusCancelled, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// IsInactive 不再占用房间日期的终态
func (s BookingStatusCode) IsInactive() bool {
	return s == BookingStatusCancelled || s == BookingStatusRejected
}

// bookingTransitions 目标状态 -> 允许的来源状态
var bookingTransitions = map[BookingStatusCode][]BookingStatusCode{
	BookingStatusConfirmed: {BookingStatusPending},
	BookingStatusRejected:  {BookingStatusPending},
	BookingStatusCompleted: {BookingStatusConfirmed},
	BookingStatusCancelled: {BookingStatusPending, BookingStatusConfirmed},
}

// TransitionSources 可以变更到 to 的来源状态
func TransitionSources(to BookingStatusCode) []BookingStatusCode {
	return bookingTransitions[to]
}

// CanTransitionTo 是否允许从当前状态变更到 to
func (s BookingStatusCode) CanTransitionTo(to BookingStatusCode) bool {
	for _, from := range bookingTransitions[to] {
		if s == from {
			return true
		}
	}
	return false
}

// InactiveBookingStatuses 不参与日期冲突判定的状态
func InactiveBookingStatuses() []BookingStatusCode {
	return []BookingStatusCode{BookingStatusCancelled, BookingStatusRejected}
}

// BookingStatus 预订状态展示数据
// 名称与颜色仅用于展示，业务逻辑只比较 Code
type BookingStatus struct {
	Code  BookingStatusCode `gorm:"primaryKey;type:varchar(20)" json:"code"`
	Name  string            `gorm:"type:varchar(50);not null" json:"name"`
	Color string            `gorm:"type:varchar(7);not null" json:"color"`
	Sort  int               `gorm:"not null;default:0" json:"sort"`
}

// TableName 表名
func (BookingStatus) TableName() string {
	return "booking_statuses"
}

// DefaultBookingStatuses 初始化数据
func DefaultBookingStatuses() []BookingStatus {
	return []BookingStatus{
		{Code: BookingStatusPending, Name: "待确认", Color: "#F59E0B", Sort: 1},
		{Code: BookingStatusConfirmed, Name: "已确认", Color: "#10B981", Sort: 2},
		{Code: BookingStatusCompleted, Name: "已完成", Color: "#3B82F6", Sort: 3},
		{Code: BookingStatusCancelled, Name: "已取消", Color: "#6B7280", Sort: 4},
		{Code: BookingStatusRejected, Name: "已拒绝", Color: "#EF4444", Sort: 5},
	}
}

// Booking 预订模型
// 入住、离店日期为日历日期，区间 [CheckInDate, CheckOutDate) 左闭右开
type Booking struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingNo       string            `gorm:"type:varchar(64);uniqueIndex;not null" json:"bookingNo"`
	UserID          int64             `gorm:"index;not null" json:"userId"`
	RoomID          int64             `gorm:"index:idx_bookings_room_dates;not null" json:"roomId"`
	CheckInDate     time.Time         `gorm:"type:date;index:idx_bookings_room_dates;not null" json:"checkInDate"`
	CheckOutDate    time.Time         `gorm:"type:date;index:idx_bookings_room_dates;not null" json:"checkOutDate"`
	NumberOfGuests  int               `gorm:"not null" json:"numberOfGuests"`
	Nights          int               `gorm:"not null" json:"nights"`
	TotalPrice      decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	FinalPrice      decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"finalPrice"`
	StatusCode      BookingStatusCode `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	SpecialRequests *string           `gorm:"type:text" json:"specialRequests,omitempty"`
	RejectReason    *string           `gorm:"type:varchar(255)" json:"rejectReason,omitempty"`
	ConfirmedAt     *time.Time        `json:"confirmedAt,omitempty"`
	CompletedAt     *time.Time        `json:"completedAt,omitempty"`
	CancelledAt     *time.Time        `json:"cancelledAt,omitempty"`
	RejectedAt      *time.Time        `json:"rejectedAt,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`

	// 关联
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room       *Room          `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	StatusInfo *BookingStatus `gorm:"foreignKey:StatusCode;references:Code" json:"statusInfo,omitempty"`
}

// TableName 表名
func (Booking) TableName() string {
	return "bookings"
}
