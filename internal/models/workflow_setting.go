package models

import "time"

// WorkflowSetting 租户级业务流程设置。见积→契约转换时的字段映射开关等。
type WorkflowSetting struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	TenantID string `gorm:"uniqueIndex;not null" json:"tenant_id"`

	// 见积→契约 字段映射开关（各自独立）。默认值由服务层补齐，
	// 列上不挂 default，否则 gorm 插入时会丢掉显式的 false。
	MapCustomerInfo bool `gorm:"not null" json:"map_customer_info"`
	MapAmount       bool `gorm:"not null" json:"map_amount"`
	MapDuration     bool `gorm:"not null" json:"map_duration"`
	MapItems        bool `gorm:"not null" json:"map_items"`

	AutoConvertEnabled bool `gorm:"not null" json:"auto_convert_enabled"`
	RequireApproval    bool `gorm:"not null" json:"require_approval"`

	// 契约默认值
	DefaultContractTemplate string `gorm:"type:varchar(40);not null;default:construction" json:"default_contract_template"`
	DefaultPaymentTerms     string `gorm:"type:varchar(200)" json:"default_payment_terms"`
	ApprovalFlowID          string `gorm:"type:varchar(64)" json:"approval_flow_id,omitempty"`

	UpdatedBy string    `gorm:"type:varchar(100)" json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (WorkflowSetting) TableName() string {
	return "workflow_settings"
}
