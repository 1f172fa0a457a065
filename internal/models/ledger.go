package models

import (
	"time"

	"gorm.io/gorm"
)

// ConstructionLedger 工事台账。契约签订后创建，承载实行预算与实际原价。
type ConstructionLedger struct {
	ID             string `gorm:"primarykey;type:varchar(64)" json:"id"`
	TenantID       string `gorm:"index;not null" json:"tenant_id"`
	ConstructionNo string `gorm:"uniqueIndex;not null" json:"construction_no"` // 工事编号（K{yyyy}-{nnnn}）
	ProjectName    string `gorm:"type:varchar(200);not null" json:"project_name"`

	ConstructionType     string `gorm:"type:varchar(100)" json:"construction_type,omitempty"`
	ConstructionCategory string `gorm:"type:varchar(100)" json:"construction_category,omitempty"`

	ContractID   string `gorm:"index;type:varchar(64);not null" json:"contract_id"`
	ContractNo   string `gorm:"type:varchar(40)" json:"contract_no"`
	EstimateID   string `gorm:"index;type:varchar(64)" json:"estimate_id,omitempty"`
	CustomerName string `gorm:"type:varchar(100)" json:"customer_name,omitempty"`

	// 契约金额
	ContractAmount Money `gorm:"type:decimal(20,0);not null;default:0" json:"contract_amount"`
	TaxAmount      Money `gorm:"type:decimal(20,0);not null;default:0" json:"tax_amount"`
	TotalAmount    Money `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"`

	// 实行预算（原价四科目）
	BudgetMaterial    Money `gorm:"type:decimal(20,0);not null;default:0" json:"budget_material"`
	BudgetLabor       Money `gorm:"type:decimal(20,0);not null;default:0" json:"budget_labor"`
	BudgetOutsourcing Money `gorm:"type:decimal(20,0);not null;default:0" json:"budget_outsourcing"`
	BudgetExpense     Money `gorm:"type:decimal(20,0);not null;default:0" json:"budget_expense"`
	BudgetTotal       Money `gorm:"type:decimal(20,0);not null;default:0" json:"budget_total"`

	// 实际原价（原价四科目）
	ActualMaterial    Money `gorm:"type:decimal(20,0);not null;default:0" json:"actual_material"`
	ActualLabor       Money `gorm:"type:decimal(20,0);not null;default:0" json:"actual_labor"`
	ActualOutsourcing Money `gorm:"type:decimal(20,0);not null;default:0" json:"actual_outsourcing"`
	ActualExpense     Money `gorm:"type:decimal(20,0);not null;default:0" json:"actual_expense"`
	ActualTotal       Money `gorm:"type:decimal(20,0);not null;default:0" json:"actual_total"`

	ScheduledStartDate *time.Time `json:"scheduled_start_date,omitempty"`
	ScheduledEndDate   *time.Time `json:"scheduled_end_date,omitempty"`
	ScheduledDays      int        `gorm:"not null;default:0" json:"scheduled_days"`
	ActualStartDate    *time.Time `json:"actual_start_date,omitempty"`
	ActualEndDate      *time.Time `json:"actual_end_date,omitempty"`

	Progress int    `gorm:"not null;default:0" json:"progress"` // 进捗率（0-100）
	Status   string `gorm:"index;not null;default:planning" json:"status"`

	Manager   string         `gorm:"type:varchar(100)" json:"manager"`
	ManagerID string         `gorm:"type:varchar(64)" json:"manager_id,omitempty"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy string         `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Categories  []BudgetCategory `gorm:"foreignKey:LedgerID;references:ID" json:"categories,omitempty"`
	CostEntries []CostEntry      `gorm:"foreignKey:LedgerID;references:ID" json:"cost_entries,omitempty"`
}

// TableName 指定表名
func (ConstructionLedger) TableName() string {
	return "construction_ledgers"
}

// BudgetCategory 实行预算分类行。発注的工事项目按 (原价科目, 工事分类) 归集到此。
type BudgetCategory struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	LedgerID     string `gorm:"index;type:varchar(64);not null" json:"ledger_id"`
	CostCategory string `gorm:"type:varchar(20);not null" json:"cost_category"` // material / labor / outsourcing / expense
	WorkCategory string `gorm:"type:varchar(100);not null" json:"work_category"`
	BudgetAmount Money  `gorm:"type:decimal(20,0);not null;default:0" json:"budget_amount"`
	ActualAmount Money  `gorm:"type:decimal(20,0);not null;default:0" json:"actual_amount"`
	SortOrder    int    `gorm:"not null;default:0" json:"sort_order"`
}

// TableName 指定表名
func (BudgetCategory) TableName() string {
	return "budget_categories"
}

// CostEntry 原价记录（実際原価）。手工录入或订单完了时写入。
type CostEntry struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	LedgerID     string    `gorm:"index;type:varchar(64);not null" json:"ledger_id"`
	CostCategory string    `gorm:"type:varchar(20);not null" json:"cost_category"`
	WorkCategory string    `gorm:"type:varchar(100)" json:"work_category"`
	Description  string    `gorm:"type:varchar(300)" json:"description"`
	Amount       Money     `gorm:"type:decimal(20,0);not null;default:0" json:"amount"`
	SourceType   string    `gorm:"type:varchar(20)" json:"source_type"` // order / manual
	SourceID     string    `gorm:"index;type:varchar(64)" json:"source_id,omitempty"`
	PartnerName  string    `gorm:"type:varchar(200)" json:"partner_name,omitempty"`
	IncurredAt   time.Time `gorm:"not null" json:"incurred_at"`
	CreatedBy    string    `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (CostEntry) TableName() string {
	return "cost_entries"
}
