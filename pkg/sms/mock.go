package sms

import (
	"context"
	"sync"
	"time"
)

// MockMessage 记录的一条短信
type MockMessage struct {
	Phone        string
	TemplateCode string
	Params       map[string]string
	SentAt       time.Time
}

// MockSender 只记录不发送，开发与测试环境使用
type MockSender struct {
	mu       sync.Mutex
	messages []MockMessage
	err      error
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

// FailWith 之后的发送都返回 err，传 nil 恢复
func (s *MockSender) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *MockSender) Send(_ context.Context, phone, templateCode string, params map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, MockMessage{
		Phone:        phone,
		TemplateCode: templateCode,
		Params:       params,
		SentAt:       time.Now(),
	})
	return nil
}

// Messages 已记录短信的副本
func (s *MockSender) Messages() []MockMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MockMessage(nil), s.messages...)
}

// GetLastMessage 最近一条，没有时返回 nil
func (s *MockSender) GetLastMessage() *MockMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return nil
	}
	last := s.messages[len(s.messages)-1]
	return &last
}

func (s *MockSender) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}
