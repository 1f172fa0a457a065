package business

import (
	"strconv"
	"strings"

	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"
	"github.com/drm-next/internal/repository"
	"github.com/drm-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateEstimate 创建见积
func (h *Handler) CreateEstimate(c *gin.Context) {
	var input service.CreateEstimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	tenantID := handlershared.TenantID(c)
	estimate, err := h.EstimateService.Create(c.Request.Context(), tenantID, handlershared.CurrentUserEmail(c), input)
	if err != nil {
		respondServiceError(c, err, "error.estimate_not_found", "error.conflict")
		return
	}
	response.Success(c, estimate)
}

// ListEstimates 见积列表
func (h *Handler) ListEstimates(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.EstimateListFilter{
		Page:       page,
		PageSize:   pageSize,
		TenantID:   handlershared.TenantID(c),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		CustomerID: c.Query("customer_id"),
	}
	estimates, total, err := h.EstimateService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, estimates, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetEstimate 见积详情
func (h *Handler) GetEstimate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	estimate, err := h.EstimateService.Get(handlershared.TenantID(c), id)
	if err != nil {
		respondServiceError(c, err, "error.estimate_not_found", "error.conflict")
		return
	}
	response.Success(c, estimate)
}

// UpdateEstimate 更新见积。已转换为契约的见积拒绝编辑。
func (h *Handler) UpdateEstimate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var input service.CreateEstimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	estimate, err := h.EstimateService.Update(handlershared.TenantID(c), id, input)
	if err != nil {
		respondServiceError(c, err, "error.estimate_not_found", "error.estimate_locked")
		return
	}
	response.Success(c, estimate)
}

// EstimateStatusRequest 见积状态变更请求
type EstimateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateEstimateStatus 变更见积状态
func (h *Handler) UpdateEstimateStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req EstimateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.EstimateService.UpdateStatus(handlershared.TenantID(c), id, req.Status); err != nil {
		respondServiceError(c, err, "error.estimate_not_found", "error.conflict")
		return
	}
	response.Success(c, gin.H{"id": id, "status": req.Status})
}

// DeleteEstimate 删除见积
func (h *Handler) DeleteEstimate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.EstimateService.Delete(handlershared.TenantID(c), id); err != nil {
		respondServiceError(c, err, "error.estimate_not_found", "error.estimate_locked")
		return
	}
	response.Success(c, gin.H{"id": id})
}
