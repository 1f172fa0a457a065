package repository

import (
	"errors"
	"time"

	"github.com/drm-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 発注书数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderWorkItem) error
	GetByID(tenantID, id string) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ListByContract(tenantID, contractID string) ([]models.Order, error)
	ListPendingWithDeadline(now time.Time, within int) ([]models.Order, error)
	Update(order *models.Order) error
	UpdateStatus(tenantID, id, status string, updates map[string]interface{}) error
	MarkOverdue(ids []string) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建発注书仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("WorkItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc, id asc")
	})
}

// Create 创建発注书与工事项目
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderWorkItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取発注书（含工事项目）
func (r *GormOrderRepository) GetByID(tenantID, id string) (*models.Order, error) {
	var order models.Order
	err := r.withItems(r.db).Where("tenant_id = ? AND id = ?", tenantID, id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 発注书列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("tenant_id = ?", filter.TenantID)
	if filter.ContractID != "" {
		query = query.Where("contract_id = ?", filter.ContractID)
	}
	if filter.PartnerID != "" {
		query = query.Where("partner_id = ?", filter.PartnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+filter.OrderNo+"%")
	}
	if filter.OverdueOnly {
		query = query.Where("is_overdue = ?", true)
	}
	if filter.DueWithin > 0 {
		limit := time.Now().AddDate(0, 0, filter.DueWithin)
		query = query.Where("order_deadline IS NOT NULL AND order_deadline <= ?", limit)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withItems(query).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByContract 获取契约下全部発注书
func (r *GormOrderRepository) ListByContract(tenantID, contractID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withItems(r.db).
		Where("tenant_id = ? AND contract_id = ?", tenantID, contractID).
		Order("order_no asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListPendingWithDeadline 跨租户取期限临近或已超期的未完了発注书（扫描任务用）
func (r *GormOrderRepository) ListPendingWithDeadline(now time.Time, within int) ([]models.Order, error) {
	limit := now.AddDate(0, 0, within)
	var orders []models.Order
	err := r.db.
		Where("order_deadline IS NOT NULL AND order_deadline <= ?", limit).
		Where("status NOT IN ?", []string{"completed", "cancelled"}).
		Order("order_deadline asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Update 更新発注书
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// UpdateStatus 更新発注书状态
func (r *GormOrderRepository) UpdateStatus(tenantID, id, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error
}

// MarkOverdue 批量标记超期
func (r *GormOrderRepository) MarkOverdue(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).
		Where("id IN ?", ids).
		Update("is_overdue", true).Error
}
