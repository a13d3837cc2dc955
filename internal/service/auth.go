package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-account/internal/domain"
	"blog-account/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// Claims 是登录 Token 中携带的声明。
type Claims struct {
	UserID uint     `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// IsAdmin 判断声明中是否包含管理员角色。
func (c *Claims) IsAdmin() bool {
	for _, r := range c.Roles {
		if r == domain.RoleAdmin {
			return true
		}
	}
	return false
}

// AuthService 负责用户登录和 Token 校验。
type AuthService struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	jwtSecret []byte
	jwtExpiry time.Duration
	now       func() time.Time
}

// NewAuthService 创建 AuthService 实例。
// jwtSecretKey 应从安全配置中获取；jwtExpiryHours <= 0 时默认 24 小时。
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, jwtSecretKey string, jwtExpiryHours int) (*AuthService, error) {
	if userRepo == nil || hasher == nil {
		panic("UserRepository and PasswordHasher cannot be nil for AuthService")
	}
	if jwtSecretKey == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if jwtExpiryHours <= 0 {
		jwtExpiryHours = 24
	}
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		jwtSecret: []byte(jwtSecretKey),
		jwtExpiry: time.Duration(jwtExpiryHours) * time.Hour,
		now:       time.Now,
	}, nil
}

// Login 校验邮箱和密码，成功后返回用户 (不含密码哈希) 和签名后的 Token。
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	logCtx := logrus.WithField("email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: User not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: Error finding user")
		}
		return nil, "", ErrAuthenticationFailed // 对客户端统一返回认证失败
	}

	if !s.hasher.Verify(user.Password, password) {
		logCtx.Warn("Login attempt failed: Invalid password")
		return nil, "", ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate JWT token during login")
		return nil, "", err
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return user.Sanitized(), token, nil
}

// ParseToken 解析并校验 HS256 Token。
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token or claims type")
	}
	if claims.UserID == 0 {
		return nil, errors.New("token is missing user_id")
	}
	return claims, nil
}

// generateJWT 为指定用户生成 JWT Token
func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Roles:  append([]string(nil), user.Roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
