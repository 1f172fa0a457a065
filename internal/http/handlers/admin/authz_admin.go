package admin

import (
	"github.com/drm-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GrantPolicyRequest 角色策略授予请求
type GrantPolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GrantRolePolicy 为角色追加策略（内置矩阵之外的细粒度授权）
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req GrantPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	requestLog(c).Infow("authz_policy_granted",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, req)
}

// ReloadPolicy 重新加载授权策略（外部直接改库后使用）
func (h *Handler) ReloadPolicy(c *gin.Context) {
	if err := h.AuthzService.ReloadPolicy(); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"reloaded": true})
}
