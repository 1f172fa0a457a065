package repository

import (
	"errors"

	"github.com/drm-next/internal/models"

	"gorm.io/gorm"
)

// EstimateRepository 见积数据访问接口
type EstimateRepository interface {
	Create(estimate *models.Estimate, items []models.EstimateItem) error
	GetByID(tenantID, id string) (*models.Estimate, error)
	List(filter EstimateListFilter) ([]models.Estimate, int64, error)
	Update(estimate *models.Estimate) error
	ReplaceItems(estimateID string, items []models.EstimateItem) error
	UpdateStatus(tenantID, id, status string) error
	Delete(tenantID, id string) error
	WithTx(tx *gorm.DB) *GormEstimateRepository
}

// GormEstimateRepository GORM 实现
type GormEstimateRepository struct {
	db *gorm.DB
}

// NewEstimateRepository 创建见积仓库
func NewEstimateRepository(db *gorm.DB) *GormEstimateRepository {
	return &GormEstimateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEstimateRepository) WithTx(tx *gorm.DB) *GormEstimateRepository {
	if tx == nil {
		return r
	}
	return &GormEstimateRepository{db: tx}
}

// Create 创建见积与明细
func (r *GormEstimateRepository) Create(estimate *models.Estimate, items []models.EstimateItem) error {
	if err := r.db.Create(estimate).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].EstimateID = estimate.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取见积（含明细，按 sort_order 排序）
func (r *GormEstimateRepository) GetByID(tenantID, id string) (*models.Estimate, error) {
	var estimate models.Estimate
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc, id asc")
	}).Where("tenant_id = ? AND id = ?", tenantID, id).First(&estimate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &estimate, nil
}

// List 见积列表
func (r *GormEstimateRepository) List(filter EstimateListFilter) ([]models.Estimate, int64, error) {
	query := r.db.Model(&models.Estimate{}).Where("tenant_id = ?", filter.TenantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("estimate_no LIKE ? OR project_name LIKE ? OR customer_name LIKE ?", like, like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var estimates []models.Estimate
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Items").Order("created_at desc").Find(&estimates).Error; err != nil {
		return nil, 0, err
	}
	return estimates, total, nil
}

// Update 更新见积
func (r *GormEstimateRepository) Update(estimate *models.Estimate) error {
	return r.db.Save(estimate).Error
}

// ReplaceItems 整体替换见积明细
func (r *GormEstimateRepository) ReplaceItems(estimateID string, items []models.EstimateItem) error {
	if err := r.db.Where("estimate_id = ?", estimateID).Delete(&models.EstimateItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].EstimateID = estimateID
	}
	if len(items) > 0 {
		return r.db.Create(&items).Error
	}
	return nil
}

// UpdateStatus 更新见积状态
func (r *GormEstimateRepository) UpdateStatus(tenantID, id, status string) error {
	return r.db.Model(&models.Estimate{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("status", status).Error
}

// Delete 删除见积（软删除）
func (r *GormEstimateRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Estimate{}).Error
}
