package shared

import (
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// TenantID 读取鉴权中间件写入的租户标识。未经过鉴权的路由退回默认租户。
func TenantID(c *gin.Context) string {
	if value, ok := c.Get("tenant_id"); ok {
		if tenantID, ok := value.(string); ok && tenantID != "" {
			return tenantID
		}
	}
	return constants.DefaultTenantID
}

// CurrentUserID 读取当前登录用户 ID。缺失或类型不符时写出错误响应。
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return 0, false
	}
}

// CurrentUserEmail 读取当前登录用户邮箱（单据的 created_by 用）
func CurrentUserEmail(c *gin.Context) string {
	if value, ok := c.Get("user_email"); ok {
		if email, ok := value.(string); ok {
			return email
		}
	}
	return ""
}
