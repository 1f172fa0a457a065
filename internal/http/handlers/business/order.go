package business

import (
	"strconv"
	"strings"

	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"
	"github.com/drm-next/internal/i18n"
	"github.com/drm-next/internal/repository"
	"github.com/drm-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SplitOrdersRequest 発注书拆分发行请求
type SplitOrdersRequest struct {
	ContractID string             `json:"contract_id" binding:"required"`
	Items      []service.WorkItem `json:"items" binding:"required"`
}

// SplitOrders 按协力会社拆分并发行発注书。
// 存在未分配项目时整体拒绝；中途失败时已创建的単据保留并在结果中报告。
func (h *Handler) SplitOrders(c *gin.Context) {
	var req SplitOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.order_items_required", err)
		return
	}

	tenantID := handlershared.TenantID(c)
	result, err := h.OrderService.SplitAndCreate(c.Request.Context(), tenantID, req.ContractID, handlershared.CurrentUserEmail(c), req.Items)
	if err != nil {
		respondServiceError(c, err, "error.contract_not_found", "error.conflict")
		return
	}

	locale := i18n.ResolveLocale(c)
	if result.FailedIndex >= 0 {
		requestLog(c).Warnw("orders_split_partial_failure",
			"tenant_id", tenantID,
			"contract_id", req.ContractID,
			"created", len(result.Created),
			"failed_index", result.FailedIndex,
		)
		response.SuccessWithMsg(c, i18n.T(locale, "message.orders_partial_failure"), result)
		return
	}
	response.SuccessWithMsg(c, i18n.T(locale, "message.orders_created"), result)
}

// ListOrders 発注书列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	dueWithin, _ := strconv.Atoi(c.Query("due_within"))

	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		TenantID:    handlershared.TenantID(c),
		ContractID:  c.Query("contract_id"),
		PartnerID:   c.Query("partner_id"),
		Status:      c.Query("status"),
		OrderNo:     c.Query("order_no"),
		OverdueOnly: c.Query("overdue") == "true",
		DueWithin:   dueWithin,
	}
	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetOrder 発注书详情（期限字段读取时重算）
func (h *Handler) GetOrder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.Get(handlershared.TenantID(c), id)
	if err != nil {
		respondServiceError(c, err, "error.order_not_found", "error.conflict")
		return
	}
	response.Success(c, order)
}

// OrderStatusRequest 発注书状态变更请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 変更発注书状态。取消时台账预算回冲。
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(handlershared.TenantID(c), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "error.order_not_found", "error.order_invalid_status")
		return
	}
	response.Success(c, order)
}
