package repository

import (
	"errors"

	"github.com/drm-next/internal/models"

	"gorm.io/gorm"
)

// ContractRepository 契约数据访问接口
type ContractRepository interface {
	Create(contract *models.Contract, clauses []models.ContractClause, items []models.ContractItem) error
	GetByID(tenantID, id string) (*models.Contract, error)
	GetByEstimateID(tenantID, estimateID string) (*models.Contract, error)
	List(filter ContractListFilter) ([]models.Contract, int64, error)
	Update(contract *models.Contract) error
	UpdateStatus(tenantID, id, status string, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormContractRepository
}

// GormContractRepository GORM 实现
type GormContractRepository struct {
	db *gorm.DB
}

// NewContractRepository 创建契约仓库
func NewContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// WithTx 绑定事务
func (r *GormContractRepository) WithTx(tx *gorm.DB) *GormContractRepository {
	if tx == nil {
		return r
	}
	return &GormContractRepository{db: tx}
}

func (r *GormContractRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Clauses", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		})
}

// Create 创建契约与条项、明细
func (r *GormContractRepository) Create(contract *models.Contract, clauses []models.ContractClause, items []models.ContractItem) error {
	if err := r.db.Create(contract).Error; err != nil {
		return err
	}
	for i := range clauses {
		clauses[i].ContractID = contract.ID
	}
	if len(clauses) > 0 {
		if err := r.db.Create(&clauses).Error; err != nil {
			return err
		}
	}
	for i := range items {
		items[i].ContractID = contract.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取契约（含条项与明细）
func (r *GormContractRepository) GetByID(tenantID, id string) (*models.Contract, error) {
	var contract models.Contract
	err := r.withDetail(r.db).Where("tenant_id = ? AND id = ?", tenantID, id).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

// GetByEstimateID 根据来源见积获取契约
func (r *GormContractRepository) GetByEstimateID(tenantID, estimateID string) (*models.Contract, error) {
	var contract models.Contract
	err := r.withDetail(r.db).Where("tenant_id = ? AND estimate_id = ?", tenantID, estimateID).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

// List 契约列表
func (r *GormContractRepository) List(filter ContractListFilter) ([]models.Contract, int64, error) {
	query := r.db.Model(&models.Contract{}).Where("tenant_id = ?", filter.TenantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EstimateID != "" {
		query = query.Where("estimate_id = ?", filter.EstimateID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("contract_no LIKE ? OR project_name LIKE ? OR customer_name LIKE ?", like, like, like)
	}
	if filter.SignedFrom != nil {
		query = query.Where("signed_at >= ?", *filter.SignedFrom)
	}
	if filter.SignedTo != nil {
		query = query.Where("signed_at <= ?", *filter.SignedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contracts []models.Contract
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withDetail(query).Order("created_at desc").Find(&contracts).Error; err != nil {
		return nil, 0, err
	}
	return contracts, total, nil
}

// Update 更新契约
func (r *GormContractRepository) Update(contract *models.Contract) error {
	return r.db.Save(contract).Error
}

// UpdateStatus 更新契约状态
func (r *GormContractRepository) UpdateStatus(tenantID, id, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Contract{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error
}
