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

// CreatePartner 登记协力会社
func (h *Handler) CreatePartner(c *gin.Context) {
	var input service.PartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.partner_invalid", err)
		return
	}

	partner, err := h.PartnerService.Create(handlershared.TenantID(c), handlershared.CurrentUserEmail(c), input)
	if err != nil {
		respondServiceError(c, err, "error.partner_not_found", "error.conflict")
		return
	}
	response.Success(c, partner)
}

// ListPartners 协力会社列表
func (h *Handler) ListPartners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	minRating, _ := strconv.Atoi(c.Query("min_rating"))

	filter := repository.PartnerListFilter{
		Page:      page,
		PageSize:  pageSize,
		TenantID:  handlershared.TenantID(c),
		Status:    c.Query("status"),
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		MinRating: minRating,
	}
	partners, total, err := h.PartnerService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, partners, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// MatchPartners 按工事分类匹配可用的协力会社（得意分野・分类・评分）
func (h *Handler) MatchPartners(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	partners, err := h.PartnerService.Match(handlershared.TenantID(c), category)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"category": category,
		"partners": partners,
	})
}

// GetPartner 协力会社详情
func (h *Handler) GetPartner(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	partner, err := h.PartnerService.Get(handlershared.TenantID(c), id)
	if err != nil {
		respondServiceError(c, err, "error.partner_not_found", "error.conflict")
		return
	}
	response.Success(c, partner)
}

// UpdatePartner 更新协力会社
func (h *Handler) UpdatePartner(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var input service.PartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.partner_invalid", err)
		return
	}

	partner, err := h.PartnerService.Update(handlershared.TenantID(c), id, input)
	if err != nil {
		respondServiceError(c, err, "error.partner_not_found", "error.conflict")
		return
	}
	response.Success(c, partner)
}

// DeletePartner 删除协力会社（软删除）
func (h *Handler) DeletePartner(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.PartnerService.Delete(handlershared.TenantID(c), id); err != nil {
		respondServiceError(c, err, "error.partner_not_found", "error.conflict")
		return
	}
	response.Success(c, gin.H{"id": id})
}
