package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== Identity 通用身份记录 ====================

// Identity 登录身份。业务属性不放在这里，放在 User（组合而非继承）。
type Identity struct {
	BaseModel
	Username     string     `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string     `gorm:"size:255"`
	IsActive     bool       `gorm:"default:true"`
	LastLoginAt  *time.Time

	// 可插拔扩展属性（PostgreSQL JSONB）
	Extra datatypes.JSON `gorm:"type:jsonb"`
}

func (Identity) TableName() string {
	return "identities"
}

// ==================== User 用户档案 ====================

// User 账号档案，挂在 Identity 上
type User struct {
	BaseModel
	IdentityID int64     `gorm:"uniqueIndex;not null"`
	Identity   *Identity `gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE"`

	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	Phone     string `gorm:"size:11;not null"`

	// 档案上的自由地址行（结构化地址见 Address 表）
	AddressLine *string `gorm:"size:200"`

	// 可空列 + 唯一索引：填了才唯一，多个 NULL 互不冲突
	Email *string `gorm:"size:254;uniqueIndex"`

	IsSeller bool `gorm:"default:false"`

	// 关联
	Addresses []Address  `gorm:"foreignKey:UserID"`
	Orders    []Order    `gorm:"foreignKey:UserID"`
	Downloads []Download `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// FullName 显示名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
