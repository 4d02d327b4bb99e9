package service

import (
	"aio-webcare/internal/domain"
	"aio-webcare/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users     repository.UserRepository
	JWTSecret []byte
}

func NewAuthService(users repository.UserRepository, secret string) *AuthService {
	return &AuthService{
		Users:     users,
		JWTSecret: []byte(secret),
	}
}

// Register 註冊新帳號，第一個註冊的人自動變成 admin
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	if existing, _ := s.Users.FindByEmail(ctx, email); existing != nil {
		return nil, errors.New("這個 Email 已經註冊過了")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleMember
	if count, _ := s.Users.Count(ctx); count == 0 {
		role = domain.RoleAdmin
	}

	user := domain.User{
		Email:    email,
		Name:     name,
		Password: string(hashed),
		Role:     role,
	}

	id, err := s.Users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	user.Password = ""
	return &user, nil
}

// Login 驗證並回傳 Token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return "", errors.New("用戶不存在或密碼錯誤")
	}

	// 比對密碼
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("用戶不存在或密碼錯誤")
	}

	// 生成 JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.Hex(),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(), // 24小時過期
	})

	return token.SignedString(s.JWTSecret)
}

// ParseToken 驗證 JWT，給 middleware 用
func (s *AuthService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("簽名方式不對")
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("無效的 Token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("無效的 Token")
	}
	return claims, nil
}

// ForgotPassword 產生重設密碼的 token (1 小時有效)
// 就算 Email 不存在也回傳成功，避免被拿來猜哪些帳號存在
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token := uuid.NewString()
	if err := s.Users.SetResetToken(ctx, user.ID, token, time.Now().Add(1*time.Hour)); err != nil {
		return err
	}

	// 正式環境這裡應該寄 Email，目前先記在 log
	logrus.Infof("密碼重設連結已產生: /reset-password?token=%s (用戶: %s)", token, email)
	return nil
}

// ResetPassword 用 reset token 換新密碼
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.Users.FindByResetToken(ctx, token)
	if err != nil {
		return errors.New("重設連結無效或已過期")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.Users.UpdatePassword(ctx, user.ID, string(hashed))
}
