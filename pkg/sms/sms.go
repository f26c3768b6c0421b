// Package sms 预订短信通知的发送通道
package sms

import "context"

const (
	ProviderAliyun = "aliyun"
	ProviderMock   = "mock"
)

// 模板键，对应配置 sms.templates 中的键
const (
	TemplateBookingCreated = "booking_created"
	TemplateBookingStatus  = "booking_status"
)

// Sender 按模板发送一条短信
type Sender interface {
	Send(ctx context.Context, phone, templateCode string, params map[string]string) error
}
