package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shop_core_v1_202608/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口。Create/Delete 同时维护 Identity。
type UserRepository interface {
	Create(ctx context.Context, identity *model.Identity, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, identityID int64) error
	SetActive(ctx context.Context, identityID int64, active bool) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter UserFilter) ([]model.User, int64, error)
}

// UserFilter 用户筛选条件
type UserFilter struct {
	Keyword  string
	IsSeller *bool
	Page     int
	PageSize int
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 同一事务内先建 Identity 再建档案
func (r *userRepository) Create(ctx context.Context, identity *model.Identity, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(identity).Error; err != nil {
			return err
		}
		user.IdentityID = identity.ID
		return tx.Create(user).Error
	})
}

// GetByID 根据 ID 获取用户（带 Identity）
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Identity").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Identity").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据登录名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN identities ON identities.id = users.identity_id").
		Where("identities.username = ?", username).
		Preload("Identity").
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail 邮箱是否已占用
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByUsername 登录名是否已占用
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Identity{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// Update 保存用户档案
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateLastLogin 刷新最近登录时间
func (r *userRepository) UpdateLastLogin(ctx context.Context, identityID int64) error {
	return r.db.WithContext(ctx).Model(&model.Identity{}).
		Where("id = ?", identityID).
		Update("last_login_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// SetActive 启用/停用身份
func (r *userRepository) SetActive(ctx context.Context, identityID int64, active bool) error {
	return r.db.WithContext(ctx).Model(&model.Identity{}).
		Where("id = ?", identityID).
		Update("is_active", active).Error
}

// Delete 级联删除：地址、订单（含明细/发货）、下载、档案、身份。
// 软删除不会触发数据库外键级联，所以在事务里逐层删。
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.Address{}).Error; err != nil {
			return err
		}

		var orderIDs []int64
		if err := tx.Model(&model.Order{}).Where("user_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&model.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&model.Shipment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", orderIDs).Delete(&model.Order{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.Download{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.User{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Identity{}, user.IdentityID).Error
	})
}

// List 分页列出用户
func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})

	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		db = db.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", keyword, keyword, keyword)
	}
	if filter.IsSeller != nil {
		db = db.Where("is_seller = ?", *filter.IsSeller)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	err := db.Preload("Identity").
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&users).Error

	return users, total, err
}
