package hotel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/qrcode"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

func TestBookingService_CreateBooking(t *testing.T) {
	env := newTestEnv(t)

	info, err := env.book(7, "2025-06-10", "2025-06-12", 2)
	require.NoError(t, err)

	assert.NotEmpty(t, info.BookingNo)
	assert.Equal(t, int64(7), info.UserID)
	assert.Equal(t, env.room.ID, info.RoomID)
	assert.Equal(t, "2025-06-10", info.CheckInDate)
	assert.Equal(t, "2025-06-12", info.CheckOutDate)
	assert.Equal(t, 2, info.Nights)
	assert.True(t, info.TotalPrice.Equal(decimal.NewFromInt(240)))
	assert.True(t, info.FinalPrice.Equal(info.TotalPrice))
	assert.Equal(t, string(models.BookingStatusPending), info.Status)
	assert.Equal(t, "待确认", info.StatusName)
	require.NotNil(t, info.Room)
	assert.Equal(t, 2, info.Room.MaxGuests)

	events := env.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventCreated, events[0].event)
	assert.Equal(t, info.BookingNo, events[0].bookingNo)

	assert.Equal(t, 1.0, counterValue(t, env.registry, "test_booking_admissions_total",
		map[string]string{"result": "accepted"}))
}

func TestBookingService_CreateBooking_AcceptsNumericRoomID(t *testing.T) {
	env := newTestEnv(t)

	var req CreateBookingRequest
	body := fmt.Sprintf(`{"roomId":%d,"checkInDate":"2025-06-10T15:00:00+08:00","checkOutDate":"2025-06-11","numberOfGuests":1}`, env.room.ID)
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	info, err := env.service.CreateBooking(context.Background(), 1, &req)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", info.CheckInDate)
	assert.Equal(t, 1, info.Nights)
}

func TestBookingService_CreateBooking_Rejections(t *testing.T) {
	env := newTestEnv(t)
	roomID := FlexibleID(fmt.Sprintf("%d", env.room.ID))

	tests := []struct {
		name string
		req  CreateBookingRequest
		want *appErrors.AppError
	}{
		{"缺少房间", CreateBookingRequest{CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11", NumberOfGuests: 1}, appErrors.ErrMissingFields},
		{"房间编号格式错误", CreateBookingRequest{RoomID: "abc", CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11", NumberOfGuests: 1}, appErrors.ErrInvalidParams},
		{"日期格式错误", CreateBookingRequest{RoomID: roomID, CheckInDate: "10/06/2025", CheckOutDate: "2025-06-11", NumberOfGuests: 1}, appErrors.ErrInvalidParams},
		{"房间不存在", CreateBookingRequest{RoomID: "9999", CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11", NumberOfGuests: 1}, appErrors.ErrRoomNotFound},
		{"缺少日期", CreateBookingRequest{RoomID: roomID, NumberOfGuests: 1}, appErrors.ErrMissingFields},
		{"缺少人数", CreateBookingRequest{RoomID: roomID, CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11"}, appErrors.ErrMissingFields},
		{"入住日期已过", CreateBookingRequest{RoomID: roomID, CheckInDate: "2025-05-31", CheckOutDate: "2025-06-02", NumberOfGuests: 1}, appErrors.ErrCheckInInPast},
		{"离店不晚于入住", CreateBookingRequest{RoomID: roomID, CheckInDate: "2025-06-10", CheckOutDate: "2025-06-10", NumberOfGuests: 1}, appErrors.ErrCheckOutBeforeCheckIn},
		{"超过容量", CreateBookingRequest{RoomID: roomID, CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11", NumberOfGuests: 3}, appErrors.ErrGuestCountExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.service.CreateBooking(context.Background(), 1, &req)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, tt.want), "got %v", err)
		})
	}

	assert.Empty(t, env.notifier.Events())
	assert.Equal(t, 1.0, counterValue(t, env.registry, "test_booking_admissions_total",
		map[string]string{"result": "guest_count_exceeded"}))
}

func TestBookingService_CreateBooking_RoomUnavailable(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.rooms.SetAvailable(context.Background(), env.room.ID, false))

	_, err := env.book(1, "2025-06-10", "2025-06-11", 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrRoomUnavailable))
}

func TestBookingService_CreateBooking_HotelDisabled(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Model(&models.Hotel{}).
		Where("id = ?", env.room.HotelID).
		Update("status", models.HotelStatusDisabled).Error)

	_, err := env.book(1, "2025-06-10", "2025-06-11", 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrRoomUnavailable))
}

func TestBookingService_CreateBooking_ConflictThenCancelFreesDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.book(1, "2025-06-10", "2025-06-15", 2)
	require.NoError(t, err)

	_, err = env.book(2, "2025-06-12", "2025-06-20", 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrDateRangeConflict))

	// 首尾相接不冲突
	_, err = env.book(2, "2025-06-15", "2025-06-16", 1)
	require.NoError(t, err)

	_, err = env.service.CancelBooking(ctx, first.ID, 1)
	require.NoError(t, err)

	second, err := env.book(2, "2025-06-12", "2025-06-15", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Nights)
}

func TestBookingService_CreateBooking_Concurrent(t *testing.T) {
	env := newTestEnv(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
		others    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := env.book(userID, "2025-07-01", "2025-07-03", 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case appErrors.Is(err, appErrors.ErrDateRangeConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	var count int64
	require.NoError(t, env.db.Model(&models.Booking{}).Where("room_id = ?", env.room.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

type halfPrice struct{}

func (halfPrice) Discount(_ context.Context, _ int64, q Quote) (decimal.Decimal, error) {
	return q.TotalPrice.Div(decimal.NewFromInt(2)), nil
}

func TestBookingService_CreateBooking_Discounter(t *testing.T) {
	env := newTestEnv(t, WithDiscounter(halfPrice{}))

	info, err := env.book(1, "2025-06-10", "2025-06-12", 1)
	require.NoError(t, err)
	assert.True(t, info.TotalPrice.Equal(decimal.NewFromInt(240)))
	assert.True(t, info.FinalPrice.Equal(decimal.NewFromInt(120)))
}

func TestBookingService_GetBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.book(1, "2025-06-10", "2025-06-11", 1)
	require.NoError(t, err)

	got, err := env.service.GetBooking(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, created.BookingNo, got.BookingNo)

	_, err = env.service.GetBooking(ctx, created.ID, 2)
	assert.True(t, appErrors.Is(err, appErrors.ErrPermissionDenied))

	_, err = env.service.GetBooking(ctx, 9999, 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrBookingNotFound))
}

func TestBookingService_ListMyBookings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, stay := range [][2]string{
		{"2025-06-10", "2025-06-11"},
		{"2025-06-12", "2025-06-13"},
		{"2025-06-14", "2025-06-15"},
	} {
		_, err := env.book(1, stay[0], stay[1], 1)
		require.NoError(t, err)
	}
	other, err := env.book(2, "2025-06-20", "2025-06-21", 1)
	require.NoError(t, err)
	_, err = env.service.CancelBooking(ctx, other.ID, 2)
	require.NoError(t, err)

	list, total, err := env.service.ListMyBookings(ctx, 1, 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)

	list, total, err = env.service.ListMyBookings(ctx, 2, 1, 10, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "已取消", list[0].StatusName)

	_, _, err = env.service.ListMyBookings(ctx, 1, 1, 10, "Cancelled")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidParams))
}

func TestBookingService_CancelBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.book(1, "2025-06-10", "2025-06-11", 1)
	require.NoError(t, err)

	_, err = env.service.CancelBooking(ctx, created.ID, 2)
	assert.True(t, appErrors.Is(err, appErrors.ErrPermissionDenied))

	cancelled, err := env.service.CancelBooking(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(models.BookingStatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	// 终态不可再取消
	_, err = env.service.CancelBooking(ctx, created.ID, 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrBookingStatusError))

	events := env.notifier.Events()
	require.Len(t, events, 2)
	assert.Equal(t, string(models.BookingStatusCancelled), events[1].event)
	assert.Equal(t, 1.0, counterValue(t, env.registry, "test_booking_transitions_total",
		map[string]string{"to": "cancelled", "actor": ActorUser}))
}

func TestBookingService_CancelBooking_FromTerminal(t *testing.T) {
	for _, status := range []models.BookingStatusCode{
		models.BookingStatusCompleted,
		models.BookingStatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			created, err := env.book(1, "2025-06-10", "2025-06-11", 1)
			require.NoError(t, err)
			require.NoError(t, env.db.Model(&models.Booking{}).
				Where("id = ?", created.ID).Update("status", status).Error)

			_, err = env.service.CancelBooking(ctx, created.ID, 1)
			assert.True(t, appErrors.Is(err, appErrors.ErrBookingStatusError))
		})
	}
}

func TestBookingService_Voucher(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.book(1, "2025-06-10", "2025-06-11", 1)
	require.NoError(t, err)

	png, err := env.service.Voucher(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = env.service.Voucher(ctx, created.ID, 2)
	assert.True(t, appErrors.Is(err, appErrors.ErrPermissionDenied))

	_, err = env.service.CancelBooking(ctx, created.ID, 1)
	require.NoError(t, err)
	_, err = env.service.Voucher(ctx, created.ID, 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrVoucherUnavailable))
}

func TestTranslateTxError(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("insert booking: %w", &pgconn.PgError{Code: code})
	}

	assert.ErrorIs(t, translateTxError(wrap("23P01")), appErrors.ErrDateRangeConflict)
	assert.ErrorIs(t, translateTxError(wrap("40001")), appErrors.ErrDateRangeConflict)
	assert.ErrorIs(t, translateTxError(wrap("23505")), appErrors.ErrBookingNoConflict)

	overflow := translateTxError(wrap("22003"))
	assert.ErrorIs(t, overflow, appErrors.ErrInvalidParams)
	assert.Equal(t, 400, appErrors.GetAppError(overflow).HTTPStatus())

	assert.ErrorIs(t, translateTxError(appErrors.ErrRoomNotFound), appErrors.ErrRoomNotFound)
	assert.ErrorIs(t, translateTxError(fmt.Errorf("disk full")), appErrors.ErrDatabaseError)
}

func TestVoucherContent(t *testing.T) {
	content := qrcode.Voucher{
		BookingNo:    "B1",
		RoomID:       3,
		CheckInDate:  day(2025, 6, 10),
		CheckOutDate: day(2025, 6, 11),
	}.Encode()
	v, err := qrcode.ParseVoucher(content)
	require.NoError(t, err)
	assert.Equal(t, "B1", v.BookingNo)
}

func TestFlexibleID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body string
		want FlexibleID
		err  bool
	}{
		{`{"roomId":"12"}`, "12", false},
		{`{"roomId":12}`, "12", false},
		{`{"roomId":null}`, "", false},
		{`{}`, "", false},
		{`{"roomId":true}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req CreateBookingRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.RoomID)
		})
	}
}

func TestParseRoomID(t *testing.T) {
	id, err := ParseRoomID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseRoomID("")
	assert.True(t, appErrors.Is(err, appErrors.ErrMissingFields))
	_, err = ParseRoomID("-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidParams))
	_, err = ParseRoomID("1.5")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidParams))
}
