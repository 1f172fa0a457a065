package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 発注书表。一份契约按协力会社拆分成多份発注书。
type Order struct {
	ID          string `gorm:"primarykey;type:varchar(64)" json:"id"`
	TenantID    string `gorm:"index;not null" json:"tenant_id"`
	OrderNo     string `gorm:"uniqueIndex;not null" json:"order_no"`
	ContractID  string `gorm:"index;type:varchar(64);not null" json:"contract_id"`
	ContractNo  string `gorm:"type:varchar(40)" json:"contract_no"`
	ProjectName string `gorm:"type:varchar(200)" json:"project_name"`

	// 协力会社
	PartnerID      string `gorm:"index;type:varchar(64);not null" json:"partner_id"`
	PartnerName    string `gorm:"type:varchar(200)" json:"partner_name"`
	PartnerCompany string `gorm:"type:varchar(200)" json:"partner_company"`

	// 金额（subtotal = Σ 明细 amount，tax = floor(subtotal × 税率)）
	Subtotal    Money `gorm:"type:decimal(20,0);not null;default:0" json:"subtotal"`
	TaxAmount   Money `gorm:"type:decimal(20,0);not null;default:0" json:"tax_amount"`
	TotalAmount Money `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"`

	OrderDate time.Time  `gorm:"not null" json:"order_date"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Duration  int        `gorm:"not null;default:0" json:"duration"`

	PaymentTerms string `gorm:"type:varchar(200)" json:"payment_terms"`
	Status       string `gorm:"index;not null;default:draft" json:"status"`

	// 発注期限管理（契约签订日 + N 日）
	ContractSignedDate *time.Time `json:"contract_signed_date,omitempty"`
	OrderDeadline      *time.Time `gorm:"index" json:"order_deadline,omitempty"`
	DaysUntilDeadline  int        `gorm:"-" json:"days_until_deadline"` // 读取时计算
	IsOverdue          bool       `gorm:"not null;default:false" json:"is_overdue"`

	ApprovalStatus string     `gorm:"type:varchar(20)" json:"approval_status,omitempty"`
	ApprovedBy     string     `gorm:"type:varchar(100)" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`

	Manager   string         `gorm:"type:varchar(100)" json:"manager"`
	ManagerID string         `gorm:"type:varchar(64)" json:"manager_id,omitempty"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy string         `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	WorkItems []OrderWorkItem `gorm:"foreignKey:OrderID;references:ID" json:"work_items,omitempty"` // 工事项目
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderWorkItem 発注书工事项目行。amount 恒等于 quantity × unit_price。
type OrderWorkItem struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	OrderID   string `gorm:"index;type:varchar(64);not null" json:"order_id"`
	Category  string `gorm:"type:varchar(100)" json:"category"`
	Name      string `gorm:"type:varchar(200);not null" json:"name"`
	Quantity  int    `gorm:"not null;default:1" json:"quantity"`
	Unit      string `gorm:"type:varchar(20)" json:"unit"`
	UnitPrice Money  `gorm:"type:decimal(20,0);not null;default:0" json:"unit_price"`
	Amount    Money  `gorm:"type:decimal(20,0);not null;default:0" json:"amount"`
	Notes     string `gorm:"type:varchar(500)" json:"notes,omitempty"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}

// TableName 指定表名
func (OrderWorkItem) TableName() string {
	return "order_work_items"
}
