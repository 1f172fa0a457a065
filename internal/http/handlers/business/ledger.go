package business

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"
	"github.com/drm-next/internal/repository"
	"github.com/drm-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateLedgerRequest 契约→工事台帐生成请求
type CreateLedgerRequest struct {
	ContractID string `json:"contract_id" binding:"required"`
}

// CreateLedgerFromContract 从契约生成工事台帐。同一契约只生成一册。
func (h *Handler) CreateLedgerFromContract(c *gin.Context) {
	var req CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	tenantID := handlershared.TenantID(c)
	ledger, err := h.LedgerService.CreateFromContract(c.Request.Context(), tenantID, req.ContractID, handlershared.CurrentUserEmail(c))
	if err != nil {
		respondServiceError(c, err, "error.contract_not_found", "error.ledger_exists")
		return
	}

	requestLog(c).Infow("ledger_created_from_contract",
		"tenant_id", tenantID,
		"contract_id", req.ContractID,
		"ledger_id", ledger.ID,
		"construction_no", ledger.ConstructionNo,
	)
	response.Success(c, ledger)
}

// ListLedgers 工事台帐列表
func (h *Handler) ListLedgers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.LedgerListFilter{
		Page:       page,
		PageSize:   pageSize,
		TenantID:   handlershared.TenantID(c),
		Status:     c.Query("status"),
		ContractID: c.Query("contract_id"),
		Search:     c.Query("search"),
	}
	ledgers, total, err := h.LedgerService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, ledgers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetLedger 工事台帐详情（含预算分类与原价明细）
func (h *Handler) GetLedger(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	ledger, err := h.LedgerService.Get(handlershared.TenantID(c), id)
	if err != nil {
		respondServiceError(c, err, "error.ledger_not_found", "error.conflict")
		return
	}
	response.Success(c, ledger)
}

// LedgerStatusRequest 工事台帐状态变更请求
type LedgerStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Progress int    `json:"progress"`
}

// UpdateLedgerStatus 变更工事台帐状态与进捗（0-100）
func (h *Handler) UpdateLedgerStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req LedgerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	ledger, err := h.LedgerService.UpdateStatus(handlershared.TenantID(c), id, req.Status, req.Progress)
	if err != nil {
		respondServiceError(c, err, "error.ledger_not_found", "error.conflict")
		return
	}
	response.Success(c, ledger)
}

// AddLedgerCost 记录实际原价。科目未指定时按关键词自动判定。
func (h *Handler) AddLedgerCost(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var input service.CostEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.cost_entry_invalid", err)
		return
	}

	ledger, err := h.LedgerService.AddCostEntry(handlershared.TenantID(c), id, handlershared.CurrentUserEmail(c), input)
	if err != nil {
		respondServiceError(c, err, "error.ledger_not_found", "error.conflict")
		return
	}
	response.Success(c, ledger)
}

// GetLedgerVariance 预算差异分析（科目×工事分类）
func (h *Handler) GetLedgerVariance(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	rows, err := h.LedgerService.Variance(handlershared.TenantID(c), id)
	if err != nil {
		respondServiceError(c, err, "error.ledger_not_found", "error.conflict")
		return
	}
	response.Success(c, gin.H{
		"ledger_id": id,
		"rows":      rows,
	})
}

// ExportLedger 导出工事台帐 Excel（台帐摘要＋原价明细）
func (h *Handler) ExportLedger(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	data, filename, err := h.LedgerService.ExportXLSX(handlershared.TenantID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.ledger_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.export_failed", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
