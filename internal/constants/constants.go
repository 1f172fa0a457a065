package constants

// DefaultTenantID 未指定租户时的占位租户（仅用于单租户/演示部署）
const DefaultTenantID = "demo-tenant"

// 见积状态常量
const (
	EstimateStatusDraft     = "draft"
	EstimateStatusSubmitted = "submitted"
	EstimateStatusAccepted  = "accepted"
	EstimateStatusConverted = "converted"
	EstimateStatusRejected  = "rejected"
)

// 契约状态常量
const (
	ContractStatusDraft           = "draft"
	ContractStatusPendingApproval = "pending_approval"
	ContractStatusApproved        = "approved"
	ContractStatusSigned          = "signed"
	ContractStatusInProgress      = "in_progress"
	ContractStatusCompleted       = "completed"
	ContractStatusCancelled       = "cancelled"
)

// 审批状态常量
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// 発注（订单）状态常量
const (
	OrderStatusDraft      = "draft"
	OrderStatusPending    = "pending"
	OrderStatusApproved   = "approved"
	OrderStatusRejected   = "rejected"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// 协力会社状态常量
const (
	PartnerStatusActive      = "active"
	PartnerStatusInactive    = "inactive"
	PartnerStatusSuspended   = "suspended"
	PartnerStatusBlacklisted = "blacklisted"
)

// 工事台帐状态常量
const (
	LedgerStatusPlanning   = "planning"
	LedgerStatusApproved   = "approved"
	LedgerStatusInProgress = "in_progress"
	LedgerStatusCompleted  = "completed"
	LedgerStatusSuspended  = "suspended"
	LedgerStatusCancelled  = "cancelled"
)

// 原价科目常量
const (
	CostCategoryMaterial    = "material"
	CostCategoryLabor       = "labor"
	CostCategoryOutsourcing = "outsourcing"
	CostCategoryExpense     = "expense"
)

// 预算差异方向常量
const (
	VarianceOver     = "over"
	VarianceUnder    = "under"
	VarianceOnBudget = "on_budget"
)

// UncategorizedKey 工事项目未填写分类时的分组键
const UncategorizedKey = "未分類"

// DefaultPaymentTerms 契约支付条件默认值（工事完成后 30 日内）
const DefaultPaymentTerms = "工事完成後30日以内"

// DefaultContractType 契约类型默认值
const DefaultContractType = "construction"

// 单据编号前缀常量
const (
	NumberPrefixEstimate = "EST"
	NumberPrefixContract = "CON"
	NumberPrefixOrder    = "ORD"
	NumberPrefixLedger   = "K"
)

// 角色常量
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

// 异步任务类型常量
const (
	TaskLedgerBudgetSync   = "ledger:budget_sync"
	TaskOrderDeadlineAlert = "order:deadline_alert"
)

// 预算同步操作常量
const (
	BudgetOpAdd      = "add"
	BudgetOpSubtract = "subtract"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)
