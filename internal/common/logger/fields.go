package logger

import (
	"time"

	"go.uber.org/zap"
)

var (
	String = zap.String
	Int64  = zap.Int64
	Bool   = zap.Bool
	Err    = zap.Error
)

// 请求相关字段

func RequestID(id string) zap.Field  { return zap.String("request_id", id) }
func Method(method string) zap.Field { return zap.String("method", method) }
func Path(path string) zap.Field     { return zap.String("path", path) }
func IP(ip string) zap.Field         { return zap.String("ip", ip) }
func StatusCode(code int) zap.Field  { return zap.Int("status_code", code) }

// Latency 以毫秒输出
func Latency(d time.Duration) zap.Field { return zap.Duration("latency", d) }

// 预订领域字段

func UserID(id int64) zap.Field           { return zap.Int64("user_id", id) }
func AdminID(id int64) zap.Field          { return zap.Int64("admin_id", id) }
func RoomID(id int64) zap.Field           { return zap.Int64("room_id", id) }
func BookingID(id int64) zap.Field        { return zap.Int64("booking_id", id) }
func BookingNo(no string) zap.Field       { return zap.String("booking_no", no) }
func BookingStatus(code string) zap.Field { return zap.String("booking_status", code) }
func Action(name string) zap.Field        { return zap.String("action", name) }
