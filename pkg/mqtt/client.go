// Package mqtt 提供 MQTT 事件发布
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Config MQTT 配置
type Config struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
	AutoReconnect  bool
	QoS            byte
	Retained       bool
}

// client 发布所需的 paho 客户端子集
type client interface {
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// Publisher MQTT 发布者
type Publisher struct {
	client   client
	qos      byte
	retained bool
	log      *zap.Logger
}

// Connect 连接 Broker 并返回发布者
func Connect(cfg *Config, log *zap.Logger) (*Publisher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("mqtt")

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(true)
	if cfg.KeepAlive > 0 {
		opts.SetKeepAlive(cfg.KeepAlive)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	opts.SetAutoReconnect(cfg.AutoReconnect)
	opts.SetOnConnectHandler(func(paho.Client) {
		log.Info("connected to broker", zap.String("broker", cfg.Broker))
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Warn("connection lost", zap.Error(err))
	})
	opts.SetReconnectingHandler(func(paho.Client, *paho.ClientOptions) {
		log.Info("reconnecting to broker")
	})

	c := paho.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(connectWait(cfg)) {
		return nil, fmt.Errorf("mqtt connect timeout: %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}

	return newPublisher(c, cfg.QoS, cfg.Retained, log), nil
}

func connectWait(cfg *Config) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return 10 * time.Second
}

func newPublisher(c client, qos byte, retained bool, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{client: c, qos: qos, retained: retained, log: log}
}

// IsConnected 检查是否已连接
func (p *Publisher) IsConnected() bool {
	return p.client != nil && p.client.IsConnected()
}

// Publish 发布消息，payload 为 []byte、string 或可 JSON 序列化的值
// ctx 结束时不再等待 Broker 确认
func (p *Publisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := encode(payload)
	if err != nil {
		return err
	}
	if !p.IsConnected() {
		return fmt.Errorf("mqtt not connected")
	}

	token := p.client.Publish(topic, p.qos, p.retained, data)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish error: %w", err)
		}
	}

	p.log.Debug("message published", zap.String("topic", topic), zap.Int("bytes", len(data)))
	return nil
}

// Close 断开连接
func (p *Publisher) Close() {
	if p.IsConnected() {
		p.client.Disconnect(250)
		p.log.Info("disconnected from broker")
	}
}

func encode(payload interface{}) ([]byte, error) {
	switch v := payload.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("mqtt marshal payload error: %w", err)
		}
		return data, nil
	}
}
