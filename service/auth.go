package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/utils"
)

// AuthService 注册与登录，成功后签发会话令牌
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*vo.AuthVO, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*vo.AuthVO, error)
	// SessionTTL 会话有效期，控制器用它设置 Cookie 的 Max-Age
	SessionTTL() time.Duration
}

type authService struct {
	db       *gorm.DB
	userRepo mysql.UserRepository
	tokens   *utils.TokenManager
	logger   *core.ZapLogger
}

// NewAuthService 创建 AuthService
func NewAuthService(db *gorm.DB, userRepo mysql.UserRepository, tokens *utils.TokenManager, logger *core.ZapLogger) AuthService {
	return &authService{db: db, userRepo: userRepo, tokens: tokens, logger: logger}
}

func (s *authService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*vo.AuthVO, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, myErrors.Validationf("username、email、password 均为必填")
	}

	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		if strings.EqualFold(existing.Username, username) {
			return nil, myErrors.ErrDuplicateUsername
		}
		return nil, myErrors.ErrDuplicateEmail
	case !errors.Is(err, myErrors.ErrRepoNotFound):
		s.logger.Error("注册查重失败", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("注册查重失败: %w", err)
	}

	if !utils.IsStrongPassword(req.Password) {
		return nil, myErrors.ErrWeakPassword
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("生成密码哈希失败: %w", err)
	}

	user := &entities.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.userRepo.CreateUser(ctx, s.db, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	s.logger.Info("用户注册成功", zap.Uint64("userID", user.ID))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*vo.AuthVO, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, myErrors.Validationf("email、password 均为必填")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrNoSuchUser
		}
		s.logger.Error("登录查询用户失败", zap.Error(err))
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Info("登录密码错误", zap.Uint64("userID", user.ID))
		return nil, myErrors.ErrIncorrectPassword
	}
	return s.issue(user)
}

func (s *authService) issue(user *entities.User) (*vo.AuthVO, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("签发会话令牌失败", zap.Uint64("userID", user.ID), zap.Error(err))
		return nil, fmt.Errorf("签发会话令牌失败: %w", err)
	}
	return &vo.AuthVO{User: vo.NewUserVO(user), Token: token}, nil
}
