package repository

import (
	"errors"

	"github.com/drm-next/internal/models"

	"gorm.io/gorm"
)

// WorkflowRepository 流程设置数据访问接口
type WorkflowRepository interface {
	GetByTenant(tenantID string) (*models.WorkflowSetting, error)
	Upsert(setting *models.WorkflowSetting) error
}

// GormWorkflowRepository GORM 实现
type GormWorkflowRepository struct {
	db *gorm.DB
}

// NewWorkflowRepository 创建流程设置仓库
func NewWorkflowRepository(db *gorm.DB) *GormWorkflowRepository {
	return &GormWorkflowRepository{db: db}
}

// GetByTenant 获取租户的流程设置
func (r *GormWorkflowRepository) GetByTenant(tenantID string) (*models.WorkflowSetting, error) {
	var setting models.WorkflowSetting
	if err := r.db.Where("tenant_id = ?", tenantID).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert 保存租户的流程设置
func (r *GormWorkflowRepository) Upsert(setting *models.WorkflowSetting) error {
	existing, err := r.GetByTenant(setting.TenantID)
	if err != nil {
		return err
	}
	if existing != nil {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
	}
	return r.db.Save(setting).Error
}
