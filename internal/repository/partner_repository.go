package repository

import (
	"errors"
	"time"

	"github.com/drm-next/internal/models"

	"gorm.io/gorm"
)

// PartnerRepository 协力会社数据访问接口
type PartnerRepository interface {
	Create(partner *models.Partner) error
	GetByID(tenantID, id string) (*models.Partner, error)
	List(filter PartnerListFilter) ([]models.Partner, int64, error)
	ListActive(tenantID string) ([]models.Partner, error)
	Update(partner *models.Partner) error
	RecordTransaction(tenantID, id string, amount models.Money, at time.Time) error
	Delete(tenantID, id string) error
}

// GormPartnerRepository GORM 实现
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository 创建协力会社仓库
func NewPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// Create 创建协力会社
func (r *GormPartnerRepository) Create(partner *models.Partner) error {
	return r.db.Create(partner).Error
}

// GetByID 根据 ID 获取协力会社
func (r *GormPartnerRepository) GetByID(tenantID, id string) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&partner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

// List 协力会社列表
func (r *GormPartnerRepository) List(filter PartnerListFilter) ([]models.Partner, int64, error) {
	query := r.db.Model(&models.Partner{}).Where("tenant_id = ?", filter.TenantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR name_kana LIKE ? OR code LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var partners []models.Partner
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("rating desc, code asc").Find(&partners).Error; err != nil {
		return nil, 0, err
	}
	return partners, total, nil
}

// ListActive 获取稼动中的协力会社（匹配与自动分配的候选集合）
func (r *GormPartnerRepository) ListActive(tenantID string) ([]models.Partner, error) {
	var partners []models.Partner
	err := r.db.
		Where("tenant_id = ? AND status = ?", tenantID, "active").
		Order("rating desc, code asc").
		Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

// Update 更新协力会社
func (r *GormPartnerRepository) Update(partner *models.Partner) error {
	return r.db.Save(partner).Error
}

// RecordTransaction 累计交易实绩
func (r *GormPartnerRepository) RecordTransaction(tenantID, id string, amount models.Money, at time.Time) error {
	return r.db.Model(&models.Partner{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]interface{}{
			"total_transactions":  gorm.Expr("total_transactions + 1"),
			"total_amount":        gorm.Expr("total_amount + ?", amount),
			"last_transaction_at": at,
		}).Error
}

// Delete 删除协力会社（软删除）
func (r *GormPartnerRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Partner{}).Error
}
