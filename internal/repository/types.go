package repository

import "time"

// EstimateListFilter 查询见积列表的过滤条件
type EstimateListFilter struct {
	Page        int
	PageSize    int
	TenantID    string
	Status      string
	Search      string
	CustomerID  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ContractListFilter 查询契约列表的过滤条件
type ContractListFilter struct {
	Page        int
	PageSize    int
	TenantID    string
	Status      string
	Search      string
	EstimateID  string
	SignedFrom  *time.Time
	SignedTo    *time.Time
}

// OrderListFilter 查询発注书列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	TenantID    string
	ContractID  string
	PartnerID   string
	Status      string
	OrderNo     string
	OverdueOnly bool
	DueWithin   int // 仅返回期限在 N 日内的発注书（0 表示不过滤）
}

// PartnerListFilter 查询协力会社列表的过滤条件
type PartnerListFilter struct {
	Page      int
	PageSize  int
	TenantID  string
	Status    string
	Category  string
	Search    string
	MinRating int
}

// LedgerListFilter 查询工事台账列表的过滤条件
type LedgerListFilter struct {
	Page       int
	PageSize   int
	TenantID   string
	Status     string
	ContractID string
	Search     string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	TenantID string
	Role     string
	Keyword  string
}
