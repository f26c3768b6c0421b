// Package qrcode 生成预订凭证二维码
package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

// RecoveryLevel 纠错级别
type RecoveryLevel int

const (
	// Low 7% 纠错
	Low RecoveryLevel = iota
	// Medium 15% 纠错
	Medium
	// High 25% 纠错
	High
	// Highest 30% 纠错
	Highest
)

// Generator 二维码生成器
type Generator struct {
	size          int
	recoveryLevel RecoveryLevel
}

// Option 生成器选项
type Option func(*Generator)

// WithSize 设置二维码尺寸（像素）
func WithSize(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.size = size
		}
	}
}

// WithRecoveryLevel 设置纠错级别
func WithRecoveryLevel(level RecoveryLevel) Option {
	return func(g *Generator) {
		g.recoveryLevel = level
	}
}

// NewGenerator 创建二维码生成器
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		size:          256,
		recoveryLevel: Medium,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Size 返回二维码尺寸
func (g *Generator) Size() int {
	return g.size
}

func (g *Generator) level() qrcode.RecoveryLevel {
	switch g.recoveryLevel {
	case Low:
		return qrcode.Low
	case High:
		return qrcode.High
	case Highest:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GeneratePNG 生成 PNG 格式二维码
func (g *Generator) GeneratePNG(content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("二维码内容不能为空")
	}
	data, err := qrcode.Encode(content, g.level(), g.size)
	if err != nil {
		return nil, fmt.Errorf("生成二维码失败: %w", err)
	}
	return data, nil
}

// GenerateDataURL 生成 Data URL 格式的二维码
func (g *Generator) GenerateDataURL(content string) (string, error) {
	data, err := g.GeneratePNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// voucherScheme 凭证内容前缀，前台扫码时据此识别
const voucherScheme = "HBV1"

// Voucher 预订凭证内容
type Voucher struct {
	BookingNo    string
	RoomID       int64
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// Encode 编码为二维码文本，形如 HBV1|<预订号>|<房间>|<入住>|<离店>
func (v Voucher) Encode() string {
	return strings.Join([]string{
		voucherScheme,
		v.BookingNo,
		fmt.Sprintf("%d", v.RoomID),
		v.CheckInDate.Format(time.DateOnly),
		v.CheckOutDate.Format(time.DateOnly),
	}, "|")
}

// ParseVoucher 解析二维码文本
func ParseVoucher(content string) (Voucher, error) {
	parts := strings.Split(content, "|")
	if len(parts) != 5 || parts[0] != voucherScheme {
		return Voucher{}, errors.New("无效的预订凭证")
	}

	var v Voucher
	v.BookingNo = parts[1]
	if _, err := fmt.Sscanf(parts[2], "%d", &v.RoomID); err != nil {
		return Voucher{}, fmt.Errorf("无效的房间号: %w", err)
	}
	var err error
	if v.CheckInDate, err = time.Parse(time.DateOnly, parts[3]); err != nil {
		return Voucher{}, fmt.Errorf("无效的入住日期: %w", err)
	}
	if v.CheckOutDate, err = time.Parse(time.DateOnly, parts[4]); err != nil {
		return Voucher{}, fmt.Errorf("无效的离店日期: %w", err)
	}
	return v, nil
}
