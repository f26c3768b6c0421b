package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/logger"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/common/tracing"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// 状态变更的操作方
const (
	ActorUser      = "user"
	ActorAdmin     = "admin"
	ActorScheduler = "scheduler"
)

// 通知事件
const (
	EventCreated = "created"
)

// stampColumns 各目标状态对应的时间戳列
var stampColumns = map[models.BookingStatusCode]string{
	models.BookingStatusConfirmed: "confirmed_at",
	models.BookingStatusRejected:  "rejected_at",
	models.BookingStatusCompleted: "completed_at",
	models.BookingStatusCancelled: "cancelled_at",
}

// Lifecycle 预订状态机，用户取消、后台审核和定时任务共用
type Lifecycle struct {
	bookingRepo *repository.BookingRepository
	notifier    Notifier
	metrics     *metrics.Metrics
	tracer      *tracing.Tracer
	now         func() time.Time
}

// NewLifecycle 创建状态机，notifier 与 m 可为 nil
// opts 中仅时钟与链路追踪生效
func NewLifecycle(bookingRepo *repository.BookingRepository, notifier Notifier, m *metrics.Metrics, opts ...Option) *Lifecycle {
	o := newOptions(opts)
	return &Lifecycle{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		metrics:     m,
		tracer:      o.tracer,
		now:         o.now,
	}
}

// Apply 将预订变更到 to 状态
// 变更以条件更新完成，并发修改导致来源状态不符时返回 ErrBookingStatusError
func (l *Lifecycle) Apply(ctx context.Context, booking *models.Booking, to models.BookingStatusCode, actor string, fields map[string]interface{}) (updated *models.Booking, err error) {
	ctx, span := l.tracer.Start(ctx, "Lifecycle.Apply",
		tracing.WithBookingID(booking.ID),
		tracing.WithBookingStatus(string(to)),
		tracing.AttrActor.String(actor),
	)
	defer func() { tracing.End(span, err) }()

	if !booking.StatusCode.CanTransitionTo(to) {
		return nil, errors.ErrBookingStatusError.
			WithDetail("status", booking.StatusCode).
			WithDetail("target", to)
	}

	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	if col, ok := stampColumns[to]; ok {
		updates[col] = l.now()
	}

	ok, err := l.bookingRepo.Transition(ctx, booking.ID, models.TransitionSources(to), to, updates)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !ok {
		return nil, errors.ErrBookingStatusError
	}

	updated, err = l.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	l.metrics.RecordTransition(string(to), actor)
	logger.Info("booking status changed",
		logger.BookingID(updated.ID),
		logger.BookingNo(updated.BookingNo),
		logger.BookingStatus(string(to)),
		logger.Action(actor),
	)
	if l.notifier != nil {
		l.notifier.Notify(ctx, string(to), updated)
	}
	return updated, nil
}
