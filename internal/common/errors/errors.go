// Package errors 定义业务错误码和错误处理
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind 错误类别，决定 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindRateLimited
)

// String 返回类别名称
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// HTTPStatus 类别对应的 HTTP 状态码
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AppError 应用错误
type AppError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Kind    Kind           `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，派生出的副本与原错误视为同一错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 返回 HTTP 状态码
func (e *AppError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// New 创建新的应用错误，默认为内部错误类别
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewKind 创建指定类别的应用错误
func NewKind(kind Kind, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) clone() *AppError {
	c := *e
	if e.Details != nil {
		c.Details = make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			c.Details[k] = v
		}
	}
	return &c
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	c := e.clone()
	c.Message = message
	return c
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

// WithDetail 附加结构化详情
func (e *AppError) WithDetail(key string, value any) *AppError {
	c := e.clone()
	if c.Details == nil {
		c.Details = make(map[string]any, 1)
	}
	c.Details[key] = value
	return c
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown       = New(1000, "未知错误")
	ErrInvalidParams = NewKind(KindValidation, 1001, "参数错误")
	ErrNotFound      = NewKind(KindNotFound, 1002, "资源不存在")
	ErrDatabaseError = New(1004, "数据库错误")
	ErrInternalError = New(1006, "内部错误")
)

// 认证错误码 (2000-2999)
var (
	ErrTokenExpired     = NewKind(KindUnauthorized, 2001, "登录已过期")
	ErrTokenInvalid     = NewKind(KindUnauthorized, 2002, "无效的令牌")
	ErrPermissionDenied = NewKind(KindForbidden, 2004, "权限不足")
)

// 酒店与房间错误码 (8000-8099)
var (
	ErrHotelNotFound      = NewKind(KindNotFound, 8000, "酒店不存在")
	ErrRoomNotFound       = NewKind(KindNotFound, 8001, "房间不存在")
	ErrBookingNotFound    = NewKind(KindNotFound, 8002, "预订不存在")
	ErrBookingStatusError = NewKind(KindConflict, 8003, "预订状态不允许此操作")
	ErrVoucherUnavailable = NewKind(KindConflict, 8004, "预订凭证不可用")
	ErrBookingNoConflict  = NewKind(KindConflict, 8005, "预订编号冲突，请重试")
)

// 预订准入错误码 (8100-8199)
var (
	ErrMissingFields         = NewKind(KindValidation, 8100, "入住日期、离店日期和入住人数为必填项")
	ErrCheckInInPast         = NewKind(KindValidation, 8101, "入住日期不能早于今天")
	ErrCheckOutBeforeCheckIn = NewKind(KindValidation, 8102, "离店日期必须晚于入住日期")
	ErrRoomUnavailable       = NewKind(KindConflict, 8103, "房间暂不可预订")
	ErrDateRangeConflict     = NewKind(KindConflict, 8104, "所选日期已被预订")
	ErrGuestCountExceeded    = NewKind(KindValidation, 8105, "入住人数超过房间容量")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrUnknown.WithError(err)
}

// Is 判断 err 链上是否存在与 target 错误码相同的应用错误
func Is(err error, target *AppError) bool {
	return stderrors.Is(err, target)
}

// KindOf 返回错误类别，非应用错误视为内部错误
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsValidation 是否为校验错误
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// IsConflict 是否为冲突错误
func IsConflict(err error) bool {
	return err != nil && KindOf(err) == KindConflict
}
