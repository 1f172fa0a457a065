package service

import (
	"errors"
	"unicode"

	"github.com/drm-next/internal/config"
)

// validatePassword 按配置的密码策略校验
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 8
	}
	if len(password) < minLength {
		return errors.New("密码长度不足")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if policy.RequireUpper && !hasUpper {
		return errors.New("密码需包含大写字母")
	}
	if policy.RequireLower && !hasLower {
		return errors.New("密码需包含小写字母")
	}
	if policy.RequireNumber && !hasNumber {
		return errors.New("密码需包含数字")
	}
	return nil
}
