package hotel

import (
	"time"

	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/common/tracing"
)

type options struct {
	now        func() time.Time
	loc        *time.Location
	discounter Discounter
	metrics    *metrics.Metrics
	tracer     *tracing.Tracer
}

// Option 服务可选项
type Option func(*options)

// WithClock 指定时钟
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLocation 指定判定“今天”所用的时区
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithDiscounter 设置折扣
func WithDiscounter(d Discounter) Option {
	return func(o *options) { o.discounter = d }
}

// WithMetrics 设置指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracer 设置链路追踪
func WithTracer(t *tracing.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

func newOptions(opts []Option) options {
	o := options{now: time.Now, loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// today 业务时区下的今天
func (o *options) today() time.Time {
	return o.now().In(o.loc)
}
