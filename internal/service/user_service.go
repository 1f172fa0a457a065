package service

import (
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/repository"
)

// UserService 用户管理服务（管理端）
type UserService struct {
	repo repository.UserRepository
	auth *AuthService
}

// NewUserService 创建用户管理服务
func NewUserService(repo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{repo: repo, auth: auth}
}

// CreateUserInput 创建用户输入
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Create 创建用户
func (s *UserService) Create(tenantID string, input CreateUserInput) (*models.User, error) {
	existing, err := s.repo.GetByEmail(tenantID, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}
	if err := s.auth.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if !validRole(role) {
		role = constants.RoleViewer
	}
	user := &models.User{
		TenantID:     tenantID,
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get 获取用户
func (s *UserService) Get(tenantID string, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// List 用户列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.repo.List(filter)
}

// UpdateRole 变更用户角色
func (s *UserService) UpdateRole(tenantID string, id uint, role string) (*models.User, error) {
	if !validRole(role) {
		return nil, NewValidationError("role", "角色不合法", 0)
	}
	user, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	user.Role = role
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive 启用/停用用户
func (s *UserService) SetActive(tenantID string, id uint, active bool) (*models.User, error) {
	user, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	user.IsActive = active
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func validRole(role string) bool {
	switch role {
	case constants.RoleAdmin, constants.RoleManager, constants.RoleViewer:
		return true
	}
	return false
}
