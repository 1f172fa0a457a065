package models

import (
	"time"

	"gorm.io/gorm"
)

// Estimate 见积表（报价单）
type Estimate struct {
	ID              string         `gorm:"primarykey;type:varchar(64)" json:"id"`
	TenantID        string         `gorm:"index;not null" json:"tenant_id"`
	EstimateNo      string         `gorm:"uniqueIndex;not null" json:"estimate_no"` // 见积编号
	ProjectName     string         `gorm:"type:varchar(200);not null" json:"project_name"`
	ProjectType     string         `gorm:"type:varchar(100)" json:"project_type"`
	CustomerID      string         `gorm:"index;type:varchar(64)" json:"customer_id"`
	CustomerName    string         `gorm:"type:varchar(100)" json:"customer_name"`
	CustomerCompany string         `gorm:"type:varchar(200)" json:"customer_company"`
	CustomerAddress string         `gorm:"type:varchar(300)" json:"customer_address"`
	CustomerPhone   string         `gorm:"type:varchar(40)" json:"customer_phone"`
	CustomerEmail   string         `gorm:"type:varchar(200)" json:"customer_email"`
	TotalAmount     Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"` // 税拔合计
	TaxAmount       Money          `gorm:"type:decimal(20,0);not null;default:0" json:"tax_amount"`   // 消费税
	Duration        int            `gorm:"not null;default:0" json:"duration"`                        // 工期（日数）
	Status          string         `gorm:"index;not null;default:draft" json:"status"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy       string         `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Items []EstimateItem `gorm:"foreignKey:EstimateID;references:ID" json:"items,omitempty"` // 明细行
}

// TableName 指定表名
func (Estimate) TableName() string {
	return "estimates"
}

// EstimateItem 见积明细行
type EstimateItem struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	EstimateID string `gorm:"index;type:varchar(64);not null" json:"estimate_id"`
	Category   string `gorm:"type:varchar(100)" json:"category"` // 工事分类
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	Quantity   int    `gorm:"not null;default:1" json:"quantity"`
	Unit       string `gorm:"type:varchar(20)" json:"unit"`
	UnitPrice  Money  `gorm:"type:decimal(20,0);not null;default:0" json:"unit_price"`
	Amount     Money  `gorm:"type:decimal(20,0);not null;default:0" json:"amount"` // = quantity × unit_price
	Notes      string `gorm:"type:varchar(500)" json:"notes,omitempty"`
	SortOrder  int    `gorm:"not null;default:0" json:"sort_order"`
}

// TableName 指定表名
func (EstimateItem) TableName() string {
	return "estimate_items"
}
