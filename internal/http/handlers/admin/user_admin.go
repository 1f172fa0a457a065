package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"
	"github.com/drm-next/internal/repository"
	"github.com/drm-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateUser 创建用户。创建成功后同步 Casbin 角色。
func (h *Handler) CreateUser(c *gin.Context) {
	var input service.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	tenantID := handlershared.TenantID(c)
	user, err := h.UserService.Create(tenantID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			respondError(c, response.CodeConflict, "error.user_email_exists", nil)
		default:
			var validationErr *service.ValidationError
			if errors.As(err, &validationErr) {
				respondErrorWithMsg(c, response.CodeBadRequest, validationErr.Error(), nil)
				return
			}
			respondError(c, response.CodeBadRequest, "error.password_policy", err)
		}
		return
	}

	if err := h.AuthzService.SetUserRoles(user.ID, []string{user.Role}); err != nil {
		requestLog(c).Warnw("user_role_sync_failed", "user_id", user.ID, "role", user.Role, "error", err)
	}
	response.Success(c, user)
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: handlershared.TenantID(c),
		Role:     c.Query("role"),
		Keyword:  c.Query("search"),
	}
	users, total, err := h.UserService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetUser 用户详情（含 Casbin 角色）
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.UserService.Get(handlershared.TenantID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	roles, err := h.AuthzService.GetUserRoles(user.ID)
	if err != nil {
		requestLog(c).Warnw("user_roles_fetch_failed", "user_id", user.ID, "error", err)
	}
	response.Success(c, gin.H{
		"user":  user,
		"roles": roles,
	})
}

// UserRoleRequest 用户角色变更请求
type UserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole 变更用户角色并同步 Casbin
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserService.UpdateRole(handlershared.TenantID(c), id, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondErrorWithMsg(c, response.CodeBadRequest, validationErr.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	if err := h.AuthzService.SetUserRoles(user.ID, []string{user.Role}); err != nil {
		requestLog(c).Warnw("user_role_sync_failed", "user_id", user.ID, "role", user.Role, "error", err)
	}
	response.Success(c, user)
}

// UserActiveRequest 用户启停请求
type UserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetUserActive 启用/停用用户
func (h *Handler) SetUserActive(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req UserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserService.SetActive(handlershared.TenantID(c), id, *req.Active)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, user)
}

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
