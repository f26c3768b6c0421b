package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserType = "user_type"

	tokenCookie = "token"
)

// UserAuth 仅允许用户令牌
func UserAuth(m *jwt.Manager) gin.HandlerFunc {
	return requireUserType(m, jwt.UserTypeUser)
}

// AdminAuth 仅允许管理员令牌
func AdminAuth(m *jwt.Manager) gin.HandlerFunc {
	return requireUserType(m, jwt.UserTypeAdmin)
}

// requireUserType 令牌缺失或无效返回 401，类型不符返回 403
func requireUserType(m *jwt.Manager, want string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Abort()
			response.Unauthorized(c, "请先登录")
			return
		}

		claims, err := m.ParseToken(raw)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			c.Abort()
			response.Unauthorized(c, "登录已过期，请重新登录")
			return
		case err != nil:
			c.Abort()
			response.Unauthorized(c, "无效的令牌")
			return
		case claims.UserType != want:
			c.Abort()
			response.Forbidden(c, "无权访问")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserType, claims.UserType)
		c.Next()
	}
}

// bearerToken 优先取 Authorization 头，其次取 token cookie
func bearerToken(c *gin.Context) string {
	if scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " "); ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token)
	}
	token, _ := c.Cookie(tokenCookie)
	return token
}

// GetUserID 当前令牌的主体 ID，未认证时为 0
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextKeyUserID)
}

func GetUserType(c *gin.Context) string {
	return c.GetString(ContextKeyUserType)
}

// GetAdminID 管理员 ID，非管理员令牌返回 0
func GetAdminID(c *gin.Context) int64 {
	if GetUserType(c) != jwt.UserTypeAdmin {
		return 0
	}
	return GetUserID(c)
}
