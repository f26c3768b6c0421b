// Package admin 提供管理后台服务
package admin

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/logger"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
)

// HotelAdminService 酒店管理服务：预订审核与房间开关
type HotelAdminService struct {
	roomRepo    *repository.RoomRepository
	bookingRepo *repository.BookingRepository
	lifecycle   *hotelService.Lifecycle
}

// NewHotelAdminService 创建酒店管理服务
func NewHotelAdminService(
	roomRepo *repository.RoomRepository,
	bookingRepo *repository.BookingRepository,
	lifecycle *hotelService.Lifecycle,
) *HotelAdminService {
	return &HotelAdminService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		lifecycle:   lifecycle,
	}
}

// RejectBookingRequest 拒绝预订请求
type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

// SetRoomAvailabilityRequest 房间开关请求
type SetRoomAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}

// maxRejectReason 拒绝原因长度上限（字符）
const maxRejectReason = 255

// GetBooking 获取预订详情
func (s *HotelAdminService) GetBooking(ctx context.Context, id int64) (*hotelService.BookingInfo, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return hotelService.NewBookingInfo(booking), nil
}

// ConfirmBooking 确认预订
func (s *HotelAdminService) ConfirmBooking(ctx context.Context, id, adminID int64) (*hotelService.BookingInfo, error) {
	return s.transition(ctx, id, adminID, models.BookingStatusConfirmed, nil)
}

// RejectBooking 拒绝预订，原因可为空
func (s *HotelAdminService) RejectBooking(ctx context.Context, id, adminID int64, reason string) (*hotelService.BookingInfo, error) {
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) > maxRejectReason {
		return nil, errors.ErrInvalidParams.WithMessage("拒绝原因过长").WithDetail("max", maxRejectReason)
	}

	var fields map[string]interface{}
	if reason != "" {
		fields = map[string]interface{}{"reject_reason": reason}
	}
	return s.transition(ctx, id, adminID, models.BookingStatusRejected, fields)
}

// CompleteBooking 完成预订
func (s *HotelAdminService) CompleteBooking(ctx context.Context, id, adminID int64) (*hotelService.BookingInfo, error) {
	return s.transition(ctx, id, adminID, models.BookingStatusCompleted, nil)
}

// SetRoomAvailability 房间上下架，不影响已有预订
func (s *HotelAdminService) SetRoomAvailability(ctx context.Context, roomID, adminID int64, available bool) (*hotelService.RoomInfo, error) {
	if _, err := s.roomRepo.GetByIDWithType(ctx, roomID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if err := s.roomRepo.SetAvailable(ctx, roomID, available); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	room, err := s.roomRepo.GetByIDWithType(ctx, roomID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	logger.Info("room availability changed",
		logger.AdminID(adminID),
		logger.RoomID(roomID),
		logger.Bool("available", available),
	)
	return hotelService.NewRoomInfo(room), nil
}

func (s *HotelAdminService) transition(ctx context.Context, id, adminID int64, to models.BookingStatusCode, fields map[string]interface{}) (*hotelService.BookingInfo, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.lifecycle.Apply(ctx, booking, to, hotelService.ActorAdmin, fields)
	if err != nil {
		return nil, err
	}

	logger.Info("booking reviewed",
		logger.AdminID(adminID),
		logger.BookingID(id),
		logger.BookingStatus(string(to)),
	)
	return hotelService.NewBookingInfo(updated), nil
}

func (s *HotelAdminService) loadBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return booking, nil
}
