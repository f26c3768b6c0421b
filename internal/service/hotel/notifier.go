package hotel

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dumeirei/hotel-booking-backend/internal/common/logger"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	"github.com/dumeirei/hotel-booking-backend/pkg/sms"
)

// Notifier 预订事件通知，失败只记录日志
type Notifier interface {
	Notify(ctx context.Context, event string, booking *models.Booking)
}

// EventPublisher 事件发布接口，由 pkg/mqtt.Publisher 实现
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// BookingEvent 预订事件消息体
type BookingEvent struct {
	Event        string          `json:"event"`
	BookingNo    string          `json:"bookingNo"`
	RoomID       int64           `json:"roomId"`
	UserID       int64           `json:"userId"`
	Status       string          `json:"status"`
	CheckInDate  string          `json:"checkInDate"`
	CheckOutDate string          `json:"checkOutDate"`
	FinalPrice   decimal.Decimal `json:"finalPrice"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

// notifyTimeout 单次通知的最长等待
const notifyTimeout = 5 * time.Second

// EventNotifier 通过 MQTT 发布事件并给用户发短信
type EventNotifier struct {
	publisher   EventPublisher
	topicPrefix string
	sender      sms.Sender
	templates   map[string]string
	userRepo    *repository.UserRepository
	metrics     *metrics.Metrics
	log         *zap.Logger
}

// NewEventNotifier 创建通知器，publisher 与 sender 均可为 nil
func NewEventNotifier(
	publisher EventPublisher,
	topicPrefix string,
	sender sms.Sender,
	templates map[string]string,
	userRepo *repository.UserRepository,
	m *metrics.Metrics,
) *EventNotifier {
	return &EventNotifier{
		publisher:   publisher,
		topicPrefix: topicPrefix,
		sender:      sender,
		templates:   templates,
		userRepo:    userRepo,
		metrics:     m,
		log:         logger.Named("notifier"),
	}
}

// Topic 事件主题
func (n *EventNotifier) Topic(event string) string {
	return n.topicPrefix + "bookings/" + event
}

// Notify 发布事件并发送短信
func (n *EventNotifier) Notify(ctx context.Context, event string, booking *models.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	n.publish(ctx, event, booking)
	n.sendSMS(ctx, event, booking)
}

func (n *EventNotifier) publish(ctx context.Context, event string, booking *models.Booking) {
	if n.publisher == nil {
		return
	}
	err := n.publisher.Publish(ctx, n.Topic(event), BookingEvent{
		Event:        event,
		BookingNo:    booking.BookingNo,
		RoomID:       booking.RoomID,
		UserID:       booking.UserID,
		Status:       string(booking.StatusCode),
		CheckInDate:  utils.FormatDate(booking.CheckInDate),
		CheckOutDate: utils.FormatDate(booking.CheckOutDate),
		FinalPrice:   booking.FinalPrice,
		OccurredAt:   time.Now(),
	})
	n.metrics.RecordMQTTMessage(event, err)
	if err != nil {
		n.log.Warn("publish booking event failed",
			zap.String("event", event),
			logger.BookingNo(booking.BookingNo),
			zap.Error(err),
		)
	}
}

func (n *EventNotifier) sendSMS(ctx context.Context, event string, booking *models.Booking) {
	if n.sender == nil || n.userRepo == nil {
		return
	}
	key := sms.TemplateBookingStatus
	if event == EventCreated {
		key = sms.TemplateBookingCreated
	}
	templateCode := n.templates[key]
	if templateCode == "" {
		return
	}

	user, err := n.userRepo.GetByID(ctx, booking.UserID)
	if err != nil || user.Phone == nil || *user.Phone == "" {
		return
	}

	err = n.sender.Send(ctx, *user.Phone, templateCode, map[string]string{
		"bookingNo":    booking.BookingNo,
		"status":       string(booking.StatusCode),
		"checkInDate":  utils.FormatDate(booking.CheckInDate),
		"checkOutDate": utils.FormatDate(booking.CheckOutDate),
	})
	n.metrics.RecordSMS(key, err)
	if err != nil {
		n.log.Warn("send booking sms failed",
			zap.String("template", key),
			logger.BookingNo(booking.BookingNo),
			zap.Error(err),
		)
	}
}
