package models

import (
	"time"

	"gorm.io/gorm"
)

// Partner 协力会社（下请）主数据
type Partner struct {
	ID       string `gorm:"primarykey;type:varchar(64)" json:"id"`
	TenantID string `gorm:"index;not null" json:"tenant_id"`
	Code     string `gorm:"index;type:varchar(20)" json:"code"`
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	NameKana string `gorm:"type:varchar(200)" json:"name_kana,omitempty"`

	Category    string     `gorm:"type:varchar(100)" json:"category"`                // 业种分类（基礎工事、躯体工事など）
	Specialties StringList `gorm:"type:text" json:"specialties"`                     // 专门分野（可为空，空视为不限）
	Rating      int        `gorm:"not null;default:3" json:"rating"`                 // 1-5 评价
	Status      string     `gorm:"index;not null;default:active" json:"status"`      // active / inactive / suspended / blacklisted

	RepresentativeName string `gorm:"type:varchar(100)" json:"representative_name,omitempty"`
	ContactPerson      string `gorm:"type:varchar(100)" json:"contact_person,omitempty"`
	Email              string `gorm:"type:varchar(200)" json:"email,omitempty"`
	Phone              string `gorm:"type:varchar(40)" json:"phone,omitempty"`
	PostalCode         string `gorm:"type:varchar(20)" json:"postal_code,omitempty"`
	Address            string `gorm:"type:varchar(300)" json:"address,omitempty"`
	PaymentTerms       string `gorm:"type:varchar(200)" json:"payment_terms,omitempty"`

	TotalTransactions int        `gorm:"not null;default:0" json:"total_transactions"`
	TotalAmount       Money      `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"`
	LastTransactionAt *time.Time `json:"last_transaction_at,omitempty"`

	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy string         `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Partner) TableName() string {
	return "partners"
}
