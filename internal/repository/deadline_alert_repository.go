package repository

import (
	"errors"
	"time"

	"github.com/drm-next/internal/models"

	"gorm.io/gorm"
)

// DeadlineAlertRepository 発注期限警报数据访问接口
type DeadlineAlertRepository interface {
	Create(alert *models.DeadlineAlert) error
	ExistsForOrder(orderID, alertType string, since time.Time) (bool, error)
	ListByTenant(tenantID string, limit int) ([]models.DeadlineAlert, error)
	MarkNotified(id uint, at time.Time) error
}

// GormDeadlineAlertRepository GORM 实现
type GormDeadlineAlertRepository struct {
	db *gorm.DB
}

// NewDeadlineAlertRepository 创建警报仓库
func NewDeadlineAlertRepository(db *gorm.DB) *GormDeadlineAlertRepository {
	return &GormDeadlineAlertRepository{db: db}
}

// Create 创建警报
func (r *GormDeadlineAlertRepository) Create(alert *models.DeadlineAlert) error {
	return r.db.Create(alert).Error
}

// ExistsForOrder 判断同类警报在指定时刻之后是否已生成（抑制重复通知）
func (r *GormDeadlineAlertRepository) ExistsForOrder(orderID, alertType string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.DeadlineAlert{}).
		Where("order_id = ? AND alert_type = ? AND created_at >= ?", orderID, alertType, since).
		Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

// ListByTenant 获取租户的警报列表
func (r *GormDeadlineAlertRepository) ListByTenant(tenantID string, limit int) ([]models.DeadlineAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	var alerts []models.DeadlineAlert
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkNotified 标记已通知
func (r *GormDeadlineAlertRepository) MarkNotified(id uint, at time.Time) error {
	return r.db.Model(&models.DeadlineAlert{}).Where("id = ?", id).Update("notified_at", at).Error
}
