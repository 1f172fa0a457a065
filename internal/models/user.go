package models

import (
	"time"

	"gorm.io/gorm"
)

// User 系统用户表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	TenantID     string         `gorm:"index;not null" json:"tenant_id"`
	Email        string         `gorm:"index;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`
	Name         string         `gorm:"type:varchar(100)" json:"name"`
	Role         string         `gorm:"type:varchar(20);not null;default:viewer" json:"role"` // admin / manager / viewer
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
