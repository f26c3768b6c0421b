package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v3/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
)

const (
	defaultEndpoint = "dysmsapi.aliyuncs.com"
	defaultTimeout  = 5 * time.Second
)

// AliyunConfig 阿里云短信配置
type AliyunConfig struct {
	AccessKeyID     string
	AccessKeySecret string
	SignName        string
	Endpoint        string
}

// AliyunSender 通过阿里云 dysmsapi 发送
type AliyunSender struct {
	client   *dysmsapi.Client
	signName string
}

func NewAliyunSender(cfg *AliyunConfig) (*AliyunSender, error) {
	if cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return nil, errors.New("阿里云短信密钥未配置")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	client, err := dysmsapi.NewClient(&openapi.Config{
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
		Endpoint:        tea.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("create dysms client: %w", err)
	}
	return &AliyunSender{client: client, signName: cfg.SignName}, nil
}

// Send SDK 不接收 context，这里把截止时间折算成请求超时
func (s *AliyunSender) Send(ctx context.Context, phone, templateCode string, params map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req, err := buildRequest(phone, s.signName, templateCode, params)
	if err != nil {
		return err
	}

	resp, err := s.client.SendSmsWithOptions(req, runtimeOptions(ctx))
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	if resp.Body == nil || tea.StringValue(resp.Body.Code) != "OK" {
		msg := "unknown error"
		if resp.Body != nil && resp.Body.Message != nil {
			msg = tea.StringValue(resp.Body.Message)
		}
		return fmt.Errorf("send sms: %s", msg)
	}
	return nil
}

func runtimeOptions(ctx context.Context) *util.RuntimeOptions {
	timeout := defaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	ms := int(timeout / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return &util.RuntimeOptions{
		ConnectTimeout: tea.Int(ms),
		ReadTimeout:    tea.Int(ms),
		Autoretry:      tea.Bool(false),
	}
}

func buildRequest(phone, signName, templateCode string, params map[string]string) (*dysmsapi.SendSmsRequest, error) {
	if phone == "" || templateCode == "" {
		return nil, errors.New("手机号和模板编码不能为空")
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal template params: %w", err)
	}
	return &dysmsapi.SendSmsRequest{
		PhoneNumbers:  tea.String(phone),
		SignName:      tea.String(signName),
		TemplateCode:  tea.String(templateCode),
		TemplateParam: tea.String(string(raw)),
	}, nil
}
