package business

import (
	"strconv"
	"time"

	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListDeadlineAlerts 発注期限警报列表（worker 定时扫描生成）
func (h *Handler) ListDeadlineAlerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	alerts, err := h.DeadlineAlertRepo.ListByTenant(handlershared.TenantID(c), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, alerts)
}

// MarkDeadlineAlertNotified 标记警报已通知
func (h *Handler) MarkDeadlineAlertNotified(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.DeadlineAlertRepo.MarkNotified(uint(id), time.Now()); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"id": id})
}
