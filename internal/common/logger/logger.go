// Package logger 提供全局结构化日志
package logger

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dumeirei/hotel-booking-backend/internal/common/config"
)

var log *zap.Logger

// SetLogger 替换全局日志器
func SetLogger(l *zap.Logger) {
	log = l
}

// Init 按配置构建全局日志器
// Output 为 stdout 时只写标准输出，为 file 时只写文件，both 同时写两处
func Init(cfg *config.LoggerConfig) error {
	enc := newEncoder(cfg.Format)

	var sinks []zapcore.WriteSyncer
	if cfg.Output != "file" {
		sinks = append(sinks, zapcore.Lock(os.Stdout))
	}
	if cfg.Output != "stdout" && cfg.FilePath != "" {
		sinks = append(sinks, zapcore.AddSync(rotatingFile(cfg)))
	}

	core := zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(sinks...), getLogLevel(cfg.Level))
	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	log = zap.New(core, opts...)
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	ec.EncodeDuration = zapcore.MillisDurationEncoder
	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func rotatingFile(cfg *config.LoggerConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}

// getLogLevel 未识别的级别按 info 处理
func getLogLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || lvl > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return lvl
}

// GetLogger 返回全局日志器，未初始化时使用开发配置
func GetLogger() *zap.Logger {
	if log == nil {
		log, _ = zap.NewDevelopment()
	}
	return log
}

// Sync 刷新缓冲
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}

func Debug(msg string, fields ...zap.Field) { GetLogger().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { GetLogger().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { GetLogger().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { GetLogger().Error(msg, fields...) }

// Named 子系统日志器，如 scheduler、notifier
func Named(name string) *zap.Logger {
	return GetLogger().Named(name)
}

// With 附带固定字段的日志器
func With(fields ...zap.Field) *zap.Logger {
	return GetLogger().With(fields...)
}

// Since 记录耗时的便捷写法
func Since(start time.Time) zap.Field {
	return Latency(time.Since(start))
}
