package service

import (
	"errors"
	"fmt"
)

// 服务层共通错误
var (
	ErrNotFound  = errors.New("对象不存在")
	ErrConflict  = errors.New("状态冲突")
	ErrForbidden = errors.New("没有权限")
)

// ValidationError 业务校验错误（携带字段与件数）
type ValidationError struct {
	Field   string
	Count   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Count > 0 {
		return fmt.Sprintf("%s: %s (%d件)", e.Field, e.Message, e.Count)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError 创建业务校验错误
func NewValidationError(field, message string, count int) *ValidationError {
	return &ValidationError{Field: field, Message: message, Count: count}
}
