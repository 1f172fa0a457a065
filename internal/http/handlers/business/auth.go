package business

import (
	"errors"
	"strings"
	"time"

	"github.com/drm-next/internal/constants"
	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"
	"github.com/drm-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
	User      interface{} `json:"user"`
}

// Login 用户登录。登录路由未经过鉴权中间件，租户取自 X-Tenant-ID 头。
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	tenantID := strings.TrimSpace(c.GetHeader("X-Tenant-ID"))
	if tenantID == "" {
		tenantID = constants.DefaultTenantID
	}

	user, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), tenantID, req.Email, req.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyAttempts):
			respondError(c, response.CodeTooManyRequests, "error.login_too_many", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, response.CodeUnauthorized, "error.account_disabled", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.login_failed", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	requestLog(c).Infow("user_login", "tenant_id", tenantID, "user_id", user.ID)
	response.Success(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      user,
	})
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 登录态修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	userID, ok := handlershared.CurrentUserID(c)
	if !ok {
		return
	}
	tenantID := handlershared.TenantID(c)

	if err := h.AuthService.ChangePassword(tenantID, userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "error.old_password_wrong", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeBadRequest, "error.password_policy", err)
		}
		return
	}

	requestLog(c).Infow("user_password_changed", "tenant_id", tenantID, "user_id", userID)
	response.Success(c, nil)
}

// GetCurrentUser 获取当前登录用户信息
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, ok := handlershared.CurrentUserID(c)
	if !ok {
		return
	}
	tenantID := handlershared.TenantID(c)

	user, err := h.UserService.Get(tenantID, userID)
	if err != nil {
		respondServiceError(c, err, "error.user_not_found", "error.conflict")
		return
	}
	response.Success(c, user)
}
