package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drm-next/internal/cache"
	"github.com/drm-next/internal/config"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// 认证相关错误
var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidPassword    = errors.New("密码不正确")
	ErrAccountDisabled    = errors.New("账号已停用")
	ErrTooManyAttempts    = errors.New("登录尝试次数过多")
)

// AuthService 认证服务
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// Login 用户登录。按租户×IP 做 Redis 限流。
func (s *AuthService) Login(ctx context.Context, tenantID, email, password, clientIP string) (*models.User, string, time.Time, error) {
	if err := s.checkLoginRateLimit(ctx, tenantID, clientIP); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.userRepo.GetByEmail(tenantID, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.userRepo.TouchLastLogin(user.ID, time.Now()); err != nil {
		return nil, "", time.Time{}, err
	}

	return user, token, expiresAt, nil
}

// ChangePassword 登录态修改密码
func (s *AuthService) ChangePassword(tenantID string, userID uint, oldPassword, newPassword string) error {
	if userID == 0 {
		return ErrNotFound
	}

	user, err := s.userRepo.GetByID(tenantID, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	return s.userRepo.Update(user)
}

func (s *AuthService) checkLoginRateLimit(ctx context.Context, tenantID, clientIP string) error {
	limit := s.cfg.Security.LoginRateLimit
	if limit.MaxAttempts <= 0 || clientIP == "" || !cache.Enabled() {
		return nil
	}
	window := time.Duration(limit.WindowSeconds) * time.Second
	if window <= 0 {
		window = 5 * time.Minute
	}
	key := fmt.Sprintf("login_attempts:%s:%s", tenantID, clientIP)
	attempts, err := cache.Incr(ctx, key, window)
	if err != nil {
		// 限流不可用时放行，登录本身仍需密码
		return nil
	}
	if attempts > int64(limit.MaxAttempts) {
		return ErrTooManyAttempts
	}
	return nil
}
