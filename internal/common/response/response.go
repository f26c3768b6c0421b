// Package response 统一的 API 响应信封
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const msgSuccess = "success"

// Response 成功信封，code 恒为 0
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody 错误信封，code 为业务错误码
type ErrorBody struct {
	Code    int            `json:"code"`
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// PageData 分页列表
type PageData struct {
	List     interface{} `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Code: 0, Message: msgSuccess, Data: data})
}

func Success(c *gin.Context, data interface{}) { ok(c, http.StatusOK, data) }
func Created(c *gin.Context, data interface{}) { ok(c, http.StatusCreated, data) }

// SuccessPage 分页响应
func SuccessPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	ok(c, http.StatusOK, PageData{List: list, Total: total, Page: page, PageSize: pageSize})
}

// Error 写入错误信封
func Error(c *gin.Context, status, code int, message string, details map[string]any) {
	c.JSON(status, ErrorBody{Code: code, Error: message, Details: details})
}

// 以 HTTP 状态码作为错误码的快捷响应，message 为空时使用默认文案
var (
	BadRequest      = statusError(http.StatusBadRequest, "bad request")
	Unauthorized    = statusError(http.StatusUnauthorized, "unauthorized")
	Forbidden       = statusError(http.StatusForbidden, "forbidden")
	NotFound        = statusError(http.StatusNotFound, "not found")
	TooManyRequests = statusError(http.StatusTooManyRequests, "too many requests")
)

func statusError(status int, fallback string) func(*gin.Context, string) {
	return func(c *gin.Context, message string) {
		if message == "" {
			message = fallback
		}
		Error(c, status, status, message, nil)
	}
}
