package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"shop_core_v1_202608/internal/model"
	"shop_core_v1_202608/internal/repository"
)

var (
	// ErrUsernameTaken 登录名已占用
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken 邮箱已占用
	ErrEmailTaken = errors.New("email already taken")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
)

// ==================== AccountService 账号服务 ====================

// RegisterInput 注册入参。密码哈希由调用方给出，认证流程不在本服务范围内。
type RegisterInput struct {
	Username     string  `validate:"required,max=100"`
	PasswordHash string  `validate:"required,max=255"`
	FirstName    string  `validate:"required,max=100"`
	LastName     string  `validate:"required,max=100"`
	Phone        string  `validate:"required,max=11"`
	AddressLine  *string `validate:"omitempty,max=200"`
	Email        *string `validate:"omitempty,email,max=254"`
	IsSeller     bool
}

// AccountService 账号服务
type AccountService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
}

// NewAccountService 创建账号服务
func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		validate: validator.New(),
	}
}

// Register 创建 Identity + User 档案。
// 邮箱可空；填了必须全局唯一（数据库唯一索引兜底，这里先查一遍给出友好错误）。
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid register input: %w", err)
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	if input.Email != nil {
		taken, err = s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	identity := &model.Identity{
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		IsActive:     true,
	}
	user := &model.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Phone:       input.Phone,
		AddressLine: input.AddressLine,
		Email:       input.Email,
		IsSeller:    input.IsSeller,
	}
	if err := s.userRepo.Create(ctx, identity, user); err != nil {
		return nil, err
	}
	user.Identity = identity
	return user, nil
}

// GetProfile 获取用户档案
func (s *AccountService) GetProfile(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Deactivate 停用身份（不删数据）
func (s *AccountService) Deactivate(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.SetActive(ctx, user.IdentityID, false)
}

// DeleteAccount 删除用户及其全部从属数据（地址/订单/下载）
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
