package hotel

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/database"
	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/logger"
	"github.com/dumeirei/hotel-booking-backend/internal/common/qrcode"
	"github.com/dumeirei/hotel-booking-backend/internal/common/tracing"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// BookingService 预订服务
type BookingService struct {
	db          *gorm.DB
	bookingRepo *repository.BookingRepository
	roomRepo    *repository.RoomRepository
	lifecycle   *Lifecycle
	notifier    Notifier
	qr          *qrcode.Generator
	options
}

// NewBookingService 创建预订服务，notifier 可为 nil
func NewBookingService(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	roomRepo *repository.RoomRepository,
	lifecycle *Lifecycle,
	notifier Notifier,
	qr *qrcode.Generator,
	opts ...Option,
) *BookingService {
	if qr == nil {
		qr = qrcode.NewGenerator()
	}
	return &BookingService{
		db:          db,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		lifecycle:   lifecycle,
		notifier:    notifier,
		qr:          qr,
		options:     newOptions(opts),
	}
}

// FlexibleID 兼容字符串与数字两种写法的编号
type FlexibleID string

// UnmarshalJSON 接受 "12" 与 12
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

// CreateBookingRequest 创建预订请求
type CreateBookingRequest struct {
	RoomID          FlexibleID `json:"roomId" swaggertype:"string" example:"12"`
	CheckInDate     string     `json:"checkInDate" example:"2025-06-10"`
	CheckOutDate    string     `json:"checkOutDate" example:"2025-06-12"`
	NumberOfGuests  int        `json:"numberOfGuests" example:"2"`
	SpecialRequests *string    `json:"specialRequests,omitempty"`
}

// BookingInfo 预订信息
type BookingInfo struct {
	ID              int64           `json:"id"`
	BookingNo       string          `json:"bookingNo"`
	UserID          int64           `json:"userId"`
	RoomID          int64           `json:"roomId"`
	Room            *RoomInfo       `json:"room,omitempty"`
	CheckInDate     string          `json:"checkInDate"`
	CheckOutDate    string          `json:"checkOutDate"`
	NumberOfGuests  int             `json:"numberOfGuests"`
	Nights          int             `json:"nights"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	FinalPrice      decimal.Decimal `json:"finalPrice"`
	Status          string          `json:"status"`
	StatusName      string          `json:"statusName"`
	StatusColor     string          `json:"statusColor"`
	SpecialRequests *string         `json:"specialRequests,omitempty"`
	RejectReason    *string         `json:"rejectReason,omitempty"`
	ConfirmedAt     *time.Time      `json:"confirmedAt,omitempty"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty"`
	RejectedAt      *time.Time      `json:"rejectedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// NewBookingInfo 转换预订信息
func NewBookingInfo(b *models.Booking) *BookingInfo {
	info := &BookingInfo{
		ID:              b.ID,
		BookingNo:       b.BookingNo,
		UserID:          b.UserID,
		RoomID:          b.RoomID,
		CheckInDate:     utils.FormatDate(b.CheckInDate),
		CheckOutDate:    utils.FormatDate(b.CheckOutDate),
		NumberOfGuests:  b.NumberOfGuests,
		Nights:          b.Nights,
		TotalPrice:      b.TotalPrice,
		FinalPrice:      b.FinalPrice,
		Status:          string(b.StatusCode),
		SpecialRequests: b.SpecialRequests,
		RejectReason:    b.RejectReason,
		ConfirmedAt:     b.ConfirmedAt,
		CompletedAt:     b.CompletedAt,
		CancelledAt:     b.CancelledAt,
		RejectedAt:      b.RejectedAt,
		CreatedAt:       b.CreatedAt,
	}
	if b.Room != nil {
		info.Room = NewRoomInfo(b.Room)
	}

	status := b.StatusInfo
	if status == nil {
		status = defaultStatusInfo(b.StatusCode)
	}
	if status != nil {
		info.StatusName = status.Name
		info.StatusColor = status.Color
	}
	return info
}

func defaultStatusInfo(code models.BookingStatusCode) *models.BookingStatus {
	for _, s := range models.DefaultBookingStatuses() {
		if s.Code == code {
			return &s
		}
	}
	return nil
}

// ParseAdmissionRequest 解析日期与人数
// 空日期保留零值，由准入判定报告缺失
func ParseAdmissionRequest(checkIn, checkOut string, guests int) (AdmissionRequest, error) {
	req := AdmissionRequest{NumberOfGuests: guests}
	var err error
	if req.CheckInDate, err = parseOptionalDate(checkIn, "checkInDate"); err != nil {
		return AdmissionRequest{}, err
	}
	if req.CheckOutDate, err = parseOptionalDate(checkOut, "checkOutDate"); err != nil {
		return AdmissionRequest{}, err
	}
	return req, nil
}

func parseOptionalDate(s, field string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseCalendarDate(s)
	if err != nil {
		return time.Time{}, errors.ErrInvalidParams.
			WithMessage("日期格式错误").
			WithDetail("field", field)
	}
	return t, nil
}

// ParseRoomID 解析房间编号
func ParseRoomID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.ErrMissingFields.WithMessage("房间编号为必填项")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidParams.
			WithMessage("房间编号格式错误").
			WithDetail("field", "roomId")
	}
	return id, nil
}

// CreateBooking 创建预订
func (s *BookingService) CreateBooking(ctx context.Context, userID int64, req *CreateBookingRequest) (info *BookingInfo, err error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.CreateBooking", tracing.WithUserID(userID))
	defer func() { tracing.End(span, err) }()

	// 1. 解析请求
	roomID, err := ParseRoomID(string(req.RoomID))
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracing.WithRoomID(roomID))

	admission, err := ParseAdmissionRequest(req.CheckInDate, req.CheckOutDate, req.NumberOfGuests)
	if err != nil {
		return nil, err
	}

	// 2. 获取房间信息
	room, err := s.roomRepo.GetByIDWithType(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 3. 事务内判定并写入
	booking, err := s.admit(ctx, userID, room, admission, req.SpecialRequests)
	result := admissionResult(err)
	s.metrics.RecordAdmission(result)
	span.SetAttributes(tracing.AttrAdmission.String(result))
	if err != nil {
		logger.Info("booking rejected",
			logger.UserID(userID),
			logger.RoomID(roomID),
			logger.String("result", result),
		)
		return nil, err
	}

	// 4. 提交后读取完整信息并通知
	created, loadErr := s.bookingRepo.GetByID(ctx, booking.ID)
	if loadErr != nil {
		logger.Warn("reload created booking failed", logger.BookingID(booking.ID), logger.Err(loadErr))
		booking.Room = room
		created = booking
	}

	span.SetAttributes(tracing.WithBookingID(created.ID))
	logger.Info("booking created",
		logger.BookingID(created.ID),
		logger.BookingNo(created.BookingNo),
		logger.UserID(userID),
		logger.RoomID(roomID),
	)
	if s.notifier != nil {
		s.notifier.Notify(ctx, EventCreated, created)
	}

	return NewBookingInfo(created), nil
}

// admit 锁定房间、读取重叠预订、判定并写入，全部在同一事务内
func (s *BookingService) admit(ctx context.Context, userID int64, room *models.Room, req AdmissionRequest, specialRequests *string) (*models.Booking, error) {
	now := s.today()
	var booking *models.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.roomRepo.GetForUpdate(ctx, tx, room.ID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return err
		}
		locked.Hotel = room.Hotel

		checkIn := utils.DateOf(req.CheckInDate, nil)
		checkOut := utils.DateOf(req.CheckOutDate, nil)
		existing, err := s.bookingRepo.ListOverlapping(ctx, tx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}

		quote, err := CheckAdmission(admissionRoomOf(locked), existingBookingsOf(existing), req, now)
		if err != nil {
			return err
		}

		if s.discounter != nil {
			final, err := s.discounter.Discount(ctx, userID, *quote)
			if err != nil {
				return errors.ErrInternalError.WithError(err)
			}
			quote.FinalPrice = final
		}

		booking = &models.Booking{
			BookingNo:       utils.GenerateOrderNo("B"),
			UserID:          userID,
			RoomID:          room.ID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			NumberOfGuests:  req.NumberOfGuests,
			Nights:          quote.Nights,
			TotalPrice:      quote.TotalPrice,
			FinalPrice:      quote.FinalPrice,
			StatusCode:      models.BookingStatusPending,
			SpecialRequests: specialRequests,
		}
		return s.bookingRepo.Create(ctx, tx, booking)
	}, s.txOptions()...)
	if err != nil {
		return nil, translateTxError(err)
	}
	return booking, nil
}

// txOptions Postgres 上使用可串行化隔离级别
func (s *BookingService) txOptions() []*sql.TxOptions {
	if database.IsPostgres(s.db) {
		return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}
	return nil
}

// translateTxError 将排他约束与串行化冲突归为日期冲突
func translateTxError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	switch {
	case database.IsExclusionViolation(err), database.IsSerializationFailure(err):
		return errors.ErrDateRangeConflict
	case database.IsUniqueViolation(err):
		return errors.ErrBookingNoConflict
	case database.IsNumericOverflow(err):
		return errors.ErrInvalidParams.
			WithMessage("预订总价超出范围").
			WithDetail("field", "checkOutDate")
	}
	return errors.ErrDatabaseError.WithError(err)
}

// GetBooking 获取本人的预订
func (s *BookingService) GetBooking(ctx context.Context, id, userID int64) (*BookingInfo, error) {
	booking, err := s.ownedBooking(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return NewBookingInfo(booking), nil
}

// ListMyBookings 分页获取本人的预订，status 为空时不过滤
func (s *BookingService) ListMyBookings(ctx context.Context, userID int64, page, pageSize int, status string) ([]*BookingInfo, int64, error) {
	var filter *models.BookingStatusCode
	if status != "" {
		code := models.BookingStatusCode(status)
		if !code.Valid() {
			return nil, 0, errors.ErrInvalidParams.
				WithMessage("未知的预订状态").
				WithDetail("status", status)
		}
		filter = &code
	}

	p := utils.Pagination{Page: page, PageSize: pageSize}
	p.Normalize()

	bookings, total, err := s.bookingRepo.ListByUser(ctx, userID, p.GetOffset(), p.GetLimit(), filter)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*BookingInfo, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, NewBookingInfo(b))
	}
	return result, total, nil
}

// CancelBooking 取消本人的预订，仅待确认和已确认可取消
func (s *BookingService) CancelBooking(ctx context.Context, id, userID int64) (*BookingInfo, error) {
	booking, err := s.ownedBooking(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.lifecycle.Apply(ctx, booking, models.BookingStatusCancelled, ActorUser, nil)
	if err != nil {
		return nil, err
	}
	return NewBookingInfo(updated), nil
}

// Voucher 生成入住凭证二维码 PNG，只对未结束的预订开放
func (s *BookingService) Voucher(ctx context.Context, id, userID int64) ([]byte, error) {
	booking, err := s.ownedBooking(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	switch booking.StatusCode {
	case models.BookingStatusPending, models.BookingStatusConfirmed:
	default:
		return nil, errors.ErrVoucherUnavailable.WithDetail("status", booking.StatusCode)
	}

	content := qrcode.Voucher{
		BookingNo:    booking.BookingNo,
		RoomID:       booking.RoomID,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
	}.Encode()

	png, err := s.qr.GeneratePNG(content)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}
	return png, nil
}

func (s *BookingService) ownedBooking(ctx context.Context, id, userID int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if booking.UserID != userID {
		return nil, errors.ErrPermissionDenied
	}
	return booking, nil
}
