package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract 契约表。由见积按租户的转换设置派生。
type Contract struct {
	ID           string     `gorm:"primarykey;type:varchar(64)" json:"id"`
	TenantID     string     `gorm:"index;not null" json:"tenant_id"`
	EstimateID   string     `gorm:"index;type:varchar(64);not null" json:"estimate_id"` // 来源见积
	EstimateNo   string     `gorm:"type:varchar(40)" json:"estimate_no"`
	ContractNo   string     `gorm:"uniqueIndex;not null" json:"contract_no"`
	ContractDate time.Time  `gorm:"not null" json:"contract_date"`
	ProjectName  string     `gorm:"type:varchar(200);not null" json:"project_name"`
	ProjectType  string     `gorm:"type:varchar(100)" json:"project_type"`
	ContractType string     `gorm:"type:varchar(40);not null;default:construction" json:"contract_type"`

	// 顾客信息（仅在映射开关开启时填充）
	CustomerID      string `gorm:"index;type:varchar(64)" json:"customer_id,omitempty"`
	CustomerName    string `gorm:"type:varchar(100)" json:"customer_name,omitempty"`
	CustomerCompany string `gorm:"type:varchar(200)" json:"customer_company,omitempty"`
	CustomerAddress string `gorm:"type:varchar(300)" json:"customer_address,omitempty"`
	CustomerPhone   string `gorm:"type:varchar(40)" json:"customer_phone,omitempty"`
	CustomerEmail   string `gorm:"type:varchar(200)" json:"customer_email,omitempty"`

	// 金额（仅在映射开关开启时填充；total = amount + tax）
	ContractAmount Money `gorm:"type:decimal(20,0);not null;default:0" json:"contract_amount"`
	TaxAmount      Money `gorm:"type:decimal(20,0);not null;default:0" json:"tax_amount"`
	TotalAmount    Money `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"`

	// 工期（仅在映射开关开启时填充）
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Duration  int        `gorm:"not null;default:0" json:"duration"`

	PaymentTerms string `gorm:"type:varchar(200)" json:"payment_terms"`

	Status         string `gorm:"index;not null;default:draft" json:"status"`
	ApprovalStatus string `gorm:"type:varchar(20)" json:"approval_status,omitempty"` // pending / approved / rejected
	ApprovalFlowID string `gorm:"type:varchar(64)" json:"approval_flow_id,omitempty"`

	Manager   string `gorm:"type:varchar(100)" json:"manager"`
	ManagerID string `gorm:"type:varchar(64)" json:"manager_id,omitempty"`

	SignedAt    *time.Time     `gorm:"index" json:"signed_at,omitempty"` // 契约签订日
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   string         `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Clauses []ContractClause `gorm:"foreignKey:ContractID;references:ID" json:"clauses,omitempty"` // 契约条项（由见积明细生成）
	Items   []ContractItem   `gorm:"foreignKey:ContractID;references:ID" json:"items,omitempty"`   // 见积明细的转写（発注时使用）
}

// TableName 指定表名
func (Contract) TableName() string {
	return "contracts"
}

// ContractClause 契约条项。标题形如「第{n}条 {工事分类}」。
type ContractClause struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	ContractID string `gorm:"index;type:varchar(64);not null" json:"contract_id"`
	Title      string `gorm:"type:varchar(200);not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	SortOrder  int    `gorm:"not null;default:0" json:"sort_order"`
}

// TableName 指定表名
func (ContractClause) TableName() string {
	return "contract_clauses"
}

// ContractItem 契约保留的见积明细行（発注拆分的数据源）
type ContractItem struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	ContractID string `gorm:"index;type:varchar(64);not null" json:"contract_id"`
	Category   string `gorm:"type:varchar(100)" json:"category"`
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	Quantity   int    `gorm:"not null;default:1" json:"quantity"`
	Unit       string `gorm:"type:varchar(20)" json:"unit"`
	UnitPrice  Money  `gorm:"type:decimal(20,0);not null;default:0" json:"unit_price"`
	Amount     Money  `gorm:"type:decimal(20,0);not null;default:0" json:"amount"`
	Notes      string `gorm:"type:varchar(500)" json:"notes,omitempty"`
	SortOrder  int    `gorm:"not null;default:0" json:"sort_order"`
}

// TableName 指定表名
func (ContractItem) TableName() string {
	return "contract_items"
}
