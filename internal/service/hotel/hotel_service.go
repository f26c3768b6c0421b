// Package hotel 提供酒店预订服务
package hotel

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/cache"
	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/logger"
	"github.com/dumeirei/hotel-booking-backend/internal/common/tracing"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// statusCacheName 状态字典的缓存指标名
const statusCacheName = "booking_statuses"

// HotelService 酒店服务，只读
type HotelService struct {
	hotelRepo   *repository.HotelRepository
	roomRepo    *repository.RoomRepository
	bookingRepo *repository.BookingRepository
	statusRepo  *repository.BookingStatusRepository
	cache       *cache.JSONCache
	options
}

// NewHotelService 创建酒店服务，statusCache 可为 nil
func NewHotelService(
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
	bookingRepo *repository.BookingRepository,
	statusRepo *repository.BookingStatusRepository,
	statusCache *cache.JSONCache,
	opts ...Option,
) *HotelService {
	return &HotelService{
		hotelRepo:   hotelRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		statusRepo:  statusRepo,
		cache:       statusCache,
		options:     newOptions(opts),
	}
}

// RoomInfo 房间信息
type RoomInfo struct {
	ID            int64           `json:"id"`
	HotelID       int64           `json:"hotelId"`
	HotelName     string          `json:"hotelName,omitempty"`
	RoomNo        string          `json:"roomNo"`
	RoomType      string          `json:"roomType"`
	MaxGuests     int             `json:"maxGuests"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	IsAvailable   bool            `json:"isAvailable"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// NewRoomInfo 转换房间信息
func NewRoomInfo(room *models.Room) *RoomInfo {
	info := &RoomInfo{
		ID:            room.ID,
		HotelID:       room.HotelID,
		RoomNo:        room.RoomNo,
		MaxGuests:     room.MaxGuests(),
		PricePerNight: room.PricePerNight,
		IsAvailable:   room.IsAvailable,
		CreatedAt:     room.CreatedAt,
	}
	if room.RoomType != nil {
		info.RoomType = room.RoomType.Name
	}
	if room.Hotel != nil {
		info.HotelName = room.Hotel.Name
	}
	return info
}

// ListRooms 获取营业中酒店的房间列表
func (s *HotelService) ListRooms(ctx context.Context, hotelID int64) ([]*RoomInfo, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if hotel.Status != models.HotelStatusActive {
		return nil, errors.ErrHotelNotFound
	}

	rooms, err := s.roomRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		room.Hotel = hotel
		result = append(result, NewRoomInfo(room))
	}
	return result, nil
}

// GetRoom 获取房间详情
func (s *HotelService) GetRoom(ctx context.Context, roomID int64) (*RoomInfo, error) {
	room, err := s.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return NewRoomInfo(room), nil
}

// Quote 按当前已提交的预订试算，不落库
func (s *HotelService) Quote(ctx context.Context, roomID int64, req AdmissionRequest) (quote *Quote, err error) {
	ctx, span := s.tracer.Start(ctx, "HotelService.Quote", tracing.WithRoomID(roomID))
	defer func() { tracing.End(span, err) }()

	room, err := s.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookingRepo.ListOverlapping(ctx, nil, roomID,
		utils.DateOf(req.CheckInDate, nil), utils.DateOf(req.CheckOutDate, nil))
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	quote, err = CheckAdmission(admissionRoomOf(room), existingBookingsOf(existing), req, s.today())
	span.SetAttributes(tracing.AttrAdmission.String(admissionResult(err)))
	return quote, err
}

// ListBookingStatuses 预订状态字典，优先读缓存
func (s *HotelService) ListBookingStatuses(ctx context.Context) ([]*models.BookingStatus, error) {
	var statuses []*models.BookingStatus
	if err := s.cache.Get(ctx, cache.KeyPrefixBookingStatuses, &statuses); err == nil {
		s.metrics.RecordCacheHit(statusCacheName)
		return statuses, nil
	}
	s.metrics.RecordCacheMiss(statusCacheName)

	statuses, err := s.statusRepo.List(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if err := s.cache.Set(ctx, cache.KeyPrefixBookingStatuses, statuses); err != nil {
		logger.Warn("cache booking statuses failed", logger.Err(err))
	}
	return statuses, nil
}

func (s *HotelService) loadRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	room, err := s.roomRepo.GetByIDWithType(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return room, nil
}
