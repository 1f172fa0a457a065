package business

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"
	"github.com/drm-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// CreateContractRequest 见积→契约转换请求
type CreateContractRequest struct {
	EstimateID string `json:"estimate_id" binding:"required"`
}

// CreateContractFromEstimate 从见积生成契约。
// 字段映射遵循租户的流程设置，生成后见积标记为已转换。
func (h *Handler) CreateContractFromEstimate(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.estimate_id_required", err)
		return
	}

	tenantID := handlershared.TenantID(c)
	contract, err := h.ContractService.CreateFromEstimate(c.Request.Context(), tenantID, req.EstimateID, handlershared.CurrentUserEmail(c))
	if err != nil {
		respondServiceError(c, err, "error.estimate_not_found", "error.conflict")
		return
	}

	requestLog(c).Infow("contract_created_from_estimate",
		"tenant_id", tenantID,
		"estimate_id", req.EstimateID,
		"contract_id", contract.ID,
		"contract_no", contract.ContractNo,
	)
	response.Success(c, contract)
}

// ListContracts 契约列表
func (h *Handler) ListContracts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ContractListFilter{
		Page:       page,
		PageSize:   pageSize,
		TenantID:   handlershared.TenantID(c),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		EstimateID: c.Query("estimate_id"),
	}
	contracts, total, err := h.ContractService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, contracts, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetContract 契约详情（含条款与工事明细）
func (h *Handler) GetContract(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	contract, err := h.ContractService.Get(handlershared.TenantID(c), id)
	if err != nil {
		respondServiceError(c, err, "error.contract_not_found", "error.conflict")
		return
	}
	response.Success(c, contract)
}

// ContractStatusRequest 契约状态变更请求
type ContractStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateContractStatus 变更契约状态。仅允许定义内的状态迁移。
func (h *Handler) UpdateContractStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req ContractStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	contract, err := h.ContractService.UpdateStatus(handlershared.TenantID(c), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "error.contract_not_found", "error.contract_invalid_status")
		return
	}
	response.Success(c, contract)
}

// SignContractRequest 契约签订请求。省略时按当前时刻签订。
type SignContractRequest struct {
	SignedAt *time.Time `json:"signed_at"`
}

// SignContract 签订契约。签订日起算発注期限。
func (h *Handler) SignContract(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req SignContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	signedAt := time.Now()
	if req.SignedAt != nil {
		signedAt = *req.SignedAt
	}

	contract, err := h.ContractService.Sign(handlershared.TenantID(c), id, signedAt)
	if err != nil {
		respondServiceError(c, err, "error.contract_not_found", "error.contract_invalid_status")
		return
	}
	response.Success(c, contract)
}

// ContractApprovalRequest 契约审批请求
type ContractApprovalRequest struct {
	ApprovalStatus string `json:"approval_status" binding:"required"`
}

// UpdateContractApproval 更新契约审批状态
func (h *Handler) UpdateContractApproval(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req ContractApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	contract, err := h.ContractService.UpdateApproval(handlershared.TenantID(c), id, req.ApprovalStatus)
	if err != nil {
		respondServiceError(c, err, "error.contract_not_found", "error.conflict")
		return
	}
	response.Success(c, contract)
}

// GetOrderPlan 生成契约的発注计划（分组＋候选＋自动分配提案）
func (h *Handler) GetOrderPlan(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	plan, err := h.OrderService.BuildOrderPlan(handlershared.TenantID(c), id)
	if err != nil {
		respondServiceError(c, err, "error.contract_not_found", "error.conflict")
		return
	}
	response.Success(c, plan)
}

// ListContractOrders 契约下已发行的発注书
func (h *Handler) ListContractOrders(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	orders, err := h.OrderService.ListByContract(handlershared.TenantID(c), id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, orders)
}
