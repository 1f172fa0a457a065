package service

import (
	"context"
	"fmt"
	"time"

	"github.com/drm-next/internal/cache"
	"github.com/drm-next/internal/config"
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/repository"
)

const workflowCacheTTL = 10 * time.Minute

// WorkflowService 租户流程设置服务。读取走 Redis 缓存，未配置的租户返回默认值。
type WorkflowService struct {
	repo     repository.WorkflowRepository
	defaults config.WorkflowConfig
}

// NewWorkflowService 创建流程设置服务
func NewWorkflowService(repo repository.WorkflowRepository, defaults config.WorkflowConfig) *WorkflowService {
	return &WorkflowService{repo: repo, defaults: defaults}
}

// Get 获取租户流程设置
func (s *WorkflowService) Get(ctx context.Context, tenantID string) (*models.WorkflowSetting, error) {
	key := workflowCacheKey(tenantID)
	var cached models.WorkflowSetting
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	setting, err := s.repo.GetByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		setting = s.defaultSetting(tenantID)
	}

	if err := cache.SetJSON(ctx, key, setting, workflowCacheTTL); err != nil {
		logger.Warnw("workflow_setting_cache_write_failed", "tenant_id", tenantID, "error", err)
	}
	return setting, nil
}

// Update 保存租户流程设置并失效缓存
func (s *WorkflowService) Update(ctx context.Context, setting *models.WorkflowSetting) error {
	if setting.TenantID == "" {
		return NewValidationError("tenant_id", "租户不能为空", 0)
	}
	if setting.DefaultContractTemplate == "" {
		setting.DefaultContractTemplate = constants.DefaultContractType
	}
	if err := s.repo.Upsert(setting); err != nil {
		return err
	}
	if err := cache.Del(ctx, workflowCacheKey(setting.TenantID)); err != nil {
		logger.Warnw("workflow_setting_cache_invalidate_failed", "tenant_id", setting.TenantID, "error", err)
	}
	return nil
}

func (s *WorkflowService) defaultSetting(tenantID string) *models.WorkflowSetting {
	template := s.defaults.DefaultContractTemplate
	if template == "" {
		template = constants.DefaultContractType
	}
	return &models.WorkflowSetting{
		TenantID:                tenantID,
		MapCustomerInfo:         s.defaults.MapCustomerInfo,
		MapAmount:               s.defaults.MapAmount,
		MapDuration:             s.defaults.MapDuration,
		MapItems:                s.defaults.MapEstimateItems,
		AutoConvertEnabled:      s.defaults.AutoConvertEnabled,
		RequireApproval:         s.defaults.RequireApproval,
		DefaultContractTemplate: template,
		DefaultPaymentTerms:     constants.DefaultPaymentTerms,
	}
}

func workflowCacheKey(tenantID string) string {
	return fmt.Sprintf("workflow_setting:%s", tenantID)
}
