// Package handler HTTP Handler 共用的错误映射与参数解析
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/logger"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/middleware"
)

// HandleError 把错误写成错误信封，err 为 nil 时返回 false
// 返回 true 时响应已写出，调用方直接 return
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	appErr := errors.GetAppError(err)
	if appErr.Kind == errors.KindInternal {
		_ = c.Error(err)
		logger.Error("request failed",
			logger.RequestID(middleware.GetRequestID(c)),
			logger.Path(c.Request.URL.Path),
			logger.Err(err),
		)
	}
	response.Error(c, appErr.HTTPStatus(), appErr.Code, appErr.Message, appErr.Details)
	return true
}

// MustSucceed err 非空时写错误信封，否则写 200
func MustSucceed(c *gin.Context, err error, data interface{}) {
	if !HandleError(c, err) {
		response.Success(c, data)
	}
}

// MustCreate 成功时写 201
func MustCreate(c *gin.Context, err error, data interface{}) {
	if !HandleError(c, err) {
		response.Created(c, data)
	}
}

func MustSucceedPage(c *gin.Context, err error, list interface{}, total int64, page, pageSize int) {
	if !HandleError(c, err) {
		response.SuccessPage(c, list, total, page, pageSize)
	}
}

// RequireUserID 当前用户 ID，未认证时写 401
func RequireUserID(c *gin.Context) (int64, bool) {
	return requireID(c, middleware.GetUserID(c))
}

// RequireAdminID 当前管理员 ID，非管理员令牌写 401
func RequireAdminID(c *gin.Context) (int64, bool) {
	return requireID(c, middleware.GetAdminID(c))
}

func requireID(c *gin.Context, id int64) (int64, bool) {
	if id == 0 {
		response.Unauthorized(c, "请先登录")
		return 0, false
	}
	return id, true
}

// ParseID 解析路径参数 id，非正整数时写 400
func ParseID(c *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		HandleError(c, errors.ErrInvalidParams.
			WithMessage("无效的"+resource+"ID").
			WithDetail("field", "id"))
		return 0, false
	}
	return id, true
}

// BindPagination 读取 page 与 pageSize，非法值回落到默认
func BindPagination(c *gin.Context) utils.Pagination {
	p := utils.Pagination{}
	p.Page, _ = strconv.Atoi(c.Query("page"))
	p.PageSize, _ = strconv.Atoi(c.Query("pageSize"))
	p.Normalize()
	return p
}

func RequireUserAndParseID(c *gin.Context, resource string) (userID, id int64, ok bool) {
	if userID, ok = RequireUserID(c); !ok {
		return 0, 0, false
	}
	if id, ok = ParseID(c, resource); !ok {
		return 0, 0, false
	}
	return userID, id, true
}

func RequireAdminAndParseID(c *gin.Context, resource string) (adminID, id int64, ok bool) {
	if adminID, ok = RequireAdminID(c); !ok {
		return 0, 0, false
	}
	if id, ok = ParseID(c, resource); !ok {
		return 0, 0, false
	}
	return adminID, id, true
}
