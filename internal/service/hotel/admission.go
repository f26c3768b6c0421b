package hotel

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// AdmissionRoom 准入判定所需的房间信息
type AdmissionRoom struct {
	ID            int64
	PricePerNight decimal.Decimal
	IsAvailable   bool
	MaxGuests     int
}

// ExistingBooking 同一房间的已有预订
// Inactive 为 true 的预订不占用日期
type ExistingBooking struct {
	CheckInDate  time.Time
	CheckOutDate time.Time
	Inactive     bool
}

// AdmissionRequest 预订请求中参与判定的字段
type AdmissionRequest struct {
	CheckInDate    time.Time
	CheckOutDate   time.Time
	NumberOfGuests int
}

// Quote 准入通过后的价格
type Quote struct {
	Nights     int             `json:"nights"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	FinalPrice decimal.Decimal `json:"finalPrice"`
}

// Discounter 折扣扩展点，返回折后价
type Discounter interface {
	Discount(ctx context.Context, userID int64, quote Quote) (decimal.Decimal, error)
}

// Overlaps 判断半开区间 [a0, a1) 与 [b0, b1) 是否相交
func Overlaps(a0, a1, b0, b1 time.Time) bool {
	return a0.Before(b1) && b0.Before(a1)
}

// CheckAdmission 判定房间能否按请求预订，通过时返回价格
// 规则按顺序检查，返回第一个不满足的错误；now 所在时区决定“今天”
func CheckAdmission(room AdmissionRoom, existing []ExistingBooking, req AdmissionRequest, now time.Time) (*Quote, error) {
	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() || req.NumberOfGuests < 1 {
		return nil, errors.ErrMissingFields
	}

	checkIn := utils.DateOf(req.CheckInDate, nil)
	checkOut := utils.DateOf(req.CheckOutDate, nil)
	today := utils.DateOf(now, now.Location())

	if checkIn.Before(today) {
		return nil, errors.ErrCheckInInPast
	}
	if !checkOut.After(checkIn) {
		return nil, errors.ErrCheckOutBeforeCheckIn
	}
	if !room.IsAvailable {
		return nil, errors.ErrRoomUnavailable
	}
	for _, b := range existing {
		if b.Inactive {
			continue
		}
		if Overlaps(checkIn, checkOut, utils.DateOf(b.CheckInDate, nil), utils.DateOf(b.CheckOutDate, nil)) {
			return nil, errors.ErrDateRangeConflict
		}
	}
	if req.NumberOfGuests > room.MaxGuests {
		return nil, errors.ErrGuestCountExceeded.
			WithMessage(fmt.Sprintf("入住人数不能超过 %d 人", room.MaxGuests)).
			WithDetail("max", room.MaxGuests)
	}

	nights := utils.NightsBetween(checkIn, checkOut)
	total := room.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))
	return &Quote{
		Nights:     nights,
		TotalPrice: total,
		FinalPrice: total,
	}, nil
}

// admissionRoomOf 从房间模型构造判定输入，房型需已加载
// 所属酒店已停业时房间视为不可预订
func admissionRoomOf(room *models.Room) AdmissionRoom {
	available := room.IsAvailable
	if room.Hotel != nil && room.Hotel.Status != models.HotelStatusActive {
		available = false
	}
	return AdmissionRoom{
		ID:            room.ID,
		PricePerNight: room.PricePerNight,
		IsAvailable:   available,
		MaxGuests:     room.MaxGuests(),
	}
}

// existingBookingsOf 转换已有预订
func existingBookingsOf(bookings []*models.Booking) []ExistingBooking {
	out := make([]ExistingBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ExistingBooking{
			CheckInDate:  b.CheckInDate,
			CheckOutDate: b.CheckOutDate,
			Inactive:     b.StatusCode.IsInactive(),
		})
	}
	return out
}

// admissionResult 准入结果的指标标签
func admissionResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, errors.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, errors.ErrCheckInInPast):
		return "check_in_in_past"
	case errors.Is(err, errors.ErrCheckOutBeforeCheckIn):
		return "check_out_before_check_in"
	case errors.Is(err, errors.ErrRoomUnavailable):
		return "room_unavailable"
	case errors.Is(err, errors.ErrDateRangeConflict):
		return "date_range_conflict"
	case errors.Is(err, errors.ErrGuestCountExceeded):
		return "guest_count_exceeded"
	default:
		return "error"
	}
}
