// Package scheduler 提供定时任务
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
)

// 任务名
const (
	TaskCompleteFinishedBookings   = "complete_finished_bookings"
	TaskRejectStalePendingBookings = "reject_stale_pending_bookings"
)

// batchSize 单次处理的预订数
const batchSize = 100

// staleRejectReason 超时未确认的拒绝原因
const staleRejectReason = "入住日期已过仍未确认，系统自动拒绝"

// TaskHandler 任务处理器
type TaskHandler struct {
	bookingRepo *repository.BookingRepository
	lifecycle   *hotelService.Lifecycle
	loc         *time.Location
	now         func() time.Time
	log         *zap.Logger
}

// NewTaskHandler 创建任务处理器，loc 为判定“今天”的时区
func NewTaskHandler(bookingRepo *repository.BookingRepository, lifecycle *hotelService.Lifecycle, loc *time.Location) *TaskHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskHandler{
		bookingRepo: bookingRepo,
		lifecycle:   lifecycle,
		loc:         loc,
		now:         time.Now,
		log:         zap.NewNop(),
	}
}

func (h *TaskHandler) today() time.Time {
	return utils.DateOf(h.now(), h.loc)
}

// CompleteFinishedBookings 离店日期已过的已确认预订标记为已完成
func (h *TaskHandler) CompleteFinishedBookings(ctx context.Context) error {
	bookings, err := h.bookingRepo.ListToComplete(ctx, h.today(), batchSize)
	if err != nil {
		return err
	}
	return h.applyAll(ctx, bookings, models.BookingStatusCompleted, nil)
}

// RejectStalePendingBookings 入住日期已过仍待确认的预订自动拒绝
func (h *TaskHandler) RejectStalePendingBookings(ctx context.Context) error {
	bookings, err := h.bookingRepo.ListStalePending(ctx, h.today(), batchSize)
	if err != nil {
		return err
	}
	return h.applyAll(ctx, bookings, models.BookingStatusRejected, map[string]interface{}{
		"reject_reason": staleRejectReason,
	})
}

// applyAll 逐个变更状态，被并发修改的预订跳过
func (h *TaskHandler) applyAll(ctx context.Context, bookings []*models.Booking, to models.BookingStatusCode, fields map[string]interface{}) error {
	if len(bookings) == 0 {
		return nil
	}
	h.log.Info("processing bookings", zap.String("target", string(to)), zap.Int("count", len(bookings)))

	for _, b := range bookings {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := h.lifecycle.Apply(ctx, b, to, hotelService.ActorScheduler, fields); err != nil {
			if errors.Is(err, errors.ErrBookingStatusError) {
				continue
			}
			return err
		}
	}
	return nil
}

// Register 注册预订相关任务
func (h *TaskHandler) Register(s *Scheduler, completeInterval, stalePendingInterval time.Duration) {
	h.log = s.log.Named("tasks")
	s.AddTask(TaskCompleteFinishedBookings, completeInterval, h.CompleteFinishedBookings)
	s.AddTask(TaskRejectStalePendingBookings, stalePendingInterval, h.RejectStalePendingBookings)
}
