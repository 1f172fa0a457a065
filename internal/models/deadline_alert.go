package models

import "time"

// DeadlineAlert 発注期限警报记录。扫描任务对临近或超期的発注书生成，避免重复通知。
type DeadlineAlert struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	TenantID  string     `gorm:"index;not null" json:"tenant_id"`
	OrderID   string     `gorm:"index;type:varchar(64);not null" json:"order_id"`
	OrderNo   string     `gorm:"type:varchar(40)" json:"order_no"`
	AlertType string     `gorm:"type:varchar(20);not null" json:"alert_type"` // approaching / overdue
	DaysLeft  int        `gorm:"not null;default:0" json:"days_left"`
	Message   string     `gorm:"type:varchar(300)" json:"message"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName 指定表名
func (DeadlineAlert) TableName() string {
	return "deadline_alerts"
}
