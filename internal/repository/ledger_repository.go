package repository

import (
	"errors"

	"github.com/drm-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository 工事台账数据访问接口
type LedgerRepository interface {
	Create(ledger *models.ConstructionLedger, categories []models.BudgetCategory) error
	GetByID(tenantID, id string) (*models.ConstructionLedger, error)
	GetByContractID(tenantID, contractID string) (*models.ConstructionLedger, error)
	List(filter LedgerListFilter) ([]models.ConstructionLedger, int64, error)
	Update(ledger *models.ConstructionLedger) error
	ReplaceBudget(ledger *models.ConstructionLedger, categories []models.BudgetCategory) error
	SaveCategory(category *models.BudgetCategory) error
	FindCategory(ledgerID, costCategory, workCategory string) (*models.BudgetCategory, error)
	AddCostEntry(entry *models.CostEntry) error
	ListCostEntries(ledgerID string) ([]models.CostEntry, error)
	WithTx(tx *gorm.DB) *GormLedgerRepository
}

// GormLedgerRepository GORM 实现
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 创建工事台账仓库
func NewLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLedgerRepository) WithTx(tx *gorm.DB) *GormLedgerRepository {
	if tx == nil {
		return r
	}
	return &GormLedgerRepository{db: tx}
}

func (r *GormLedgerRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("CostEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("incurred_at asc, id asc")
		})
}

// Create 创建台账与预算分类
func (r *GormLedgerRepository) Create(ledger *models.ConstructionLedger, categories []models.BudgetCategory) error {
	if err := r.db.Create(ledger).Error; err != nil {
		return err
	}
	for i := range categories {
		categories[i].LedgerID = ledger.ID
	}
	if len(categories) > 0 {
		if err := r.db.Create(&categories).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取台账（含预算分类与原价记录）
func (r *GormLedgerRepository) GetByID(tenantID, id string) (*models.ConstructionLedger, error) {
	var ledger models.ConstructionLedger
	err := r.withDetail(r.db).Where("tenant_id = ? AND id = ?", tenantID, id).First(&ledger).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ledger, nil
}

// GetByContractID 根据契约获取台账
func (r *GormLedgerRepository) GetByContractID(tenantID, contractID string) (*models.ConstructionLedger, error) {
	var ledger models.ConstructionLedger
	err := r.withDetail(r.db).Where("tenant_id = ? AND contract_id = ?", tenantID, contractID).First(&ledger).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ledger, nil
}

// List 台账列表
func (r *GormLedgerRepository) List(filter LedgerListFilter) ([]models.ConstructionLedger, int64, error) {
	query := r.db.Model(&models.ConstructionLedger{}).Where("tenant_id = ?", filter.TenantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ContractID != "" {
		query = query.Where("contract_id = ?", filter.ContractID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("construction_no LIKE ? OR project_name LIKE ? OR customer_name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ledgers []models.ConstructionLedger
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Categories").Order("created_at desc").Find(&ledgers).Error; err != nil {
		return nil, 0, err
	}
	return ledgers, total, nil
}

// Update 更新台账
func (r *GormLedgerRepository) Update(ledger *models.ConstructionLedger) error {
	return r.db.Save(ledger).Error
}

// ReplaceBudget 在同一事务内保存台账预算汇总与全部预算分类行。
// 预算同步整体重算后调用，事务保证中途失败不会留下半套预算。
func (r *GormLedgerRepository) ReplaceBudget(ledger *models.ConstructionLedger, categories []models.BudgetCategory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(ledger).Error; err != nil {
			return err
		}
		for i := range categories {
			if err := tx.Save(&categories[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveCategory 保存预算分类行
func (r *GormLedgerRepository) SaveCategory(category *models.BudgetCategory) error {
	return r.db.Save(category).Error
}

// FindCategory 按 (原价分类, 工事分类) 查找预算分类行
func (r *GormLedgerRepository) FindCategory(ledgerID, costCategory, workCategory string) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	err := r.db.
		Where("ledger_id = ? AND cost_category = ? AND work_category = ?", ledgerID, costCategory, workCategory).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// AddCostEntry 追加原价记录
func (r *GormLedgerRepository) AddCostEntry(entry *models.CostEntry) error {
	return r.db.Create(entry).Error
}

// ListCostEntries 获取台账原价记录
func (r *GormLedgerRepository) ListCostEntries(ledgerID string) ([]models.CostEntry, error) {
	var entries []models.CostEntry
	err := r.db.
		Where("ledger_id = ?", ledgerID).
		Order("incurred_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
