package business

import (
	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetWorkflowSettings 获取租户的流程设置（未配置时返回默认值）
func (h *Handler) GetWorkflowSettings(c *gin.Context) {
	setting, err := h.WorkflowService.Get(c.Request.Context(), handlershared.TenantID(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// WorkflowSettingRequest 流程设置更新请求。指针字段省略时保留现值。
type WorkflowSettingRequest struct {
	MapCustomerInfo         *bool   `json:"map_customer_info"`
	MapAmount               *bool   `json:"map_amount"`
	MapDuration             *bool   `json:"map_duration"`
	MapItems                *bool   `json:"map_items"`
	AutoConvertEnabled      *bool   `json:"auto_convert_enabled"`
	RequireApproval         *bool   `json:"require_approval"`
	DefaultContractTemplate *string `json:"default_contract_template"`
	DefaultPaymentTerms     *string `json:"default_payment_terms"`
	ApprovalFlowID          *string `json:"approval_flow_id"`
}

// UpdateWorkflowSettings 更新流程设置
func (h *Handler) UpdateWorkflowSettings(c *gin.Context) {
	var req WorkflowSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	tenantID := handlershared.TenantID(c)
	setting, err := h.WorkflowService.Get(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}

	if req.MapCustomerInfo != nil {
		setting.MapCustomerInfo = *req.MapCustomerInfo
	}
	if req.MapAmount != nil {
		setting.MapAmount = *req.MapAmount
	}
	if req.MapDuration != nil {
		setting.MapDuration = *req.MapDuration
	}
	if req.MapItems != nil {
		setting.MapItems = *req.MapItems
	}
	if req.AutoConvertEnabled != nil {
		setting.AutoConvertEnabled = *req.AutoConvertEnabled
	}
	if req.RequireApproval != nil {
		setting.RequireApproval = *req.RequireApproval
	}
	if req.DefaultContractTemplate != nil {
		setting.DefaultContractTemplate = *req.DefaultContractTemplate
	}
	if req.DefaultPaymentTerms != nil {
		setting.DefaultPaymentTerms = *req.DefaultPaymentTerms
	}
	if req.ApprovalFlowID != nil {
		setting.ApprovalFlowID = *req.ApprovalFlowID
	}
	setting.TenantID = tenantID
	setting.UpdatedBy = handlershared.CurrentUserEmail(c)

	if err := h.WorkflowService.Update(c.Request.Context(), setting); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, setting)
}
