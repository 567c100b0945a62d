package model

import (
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ==================== 商品可售状态 ====================

// Availability 商品可售状态（闭合枚举，消费处必须穷举）
type Availability string

const (
	AvailabilityInStock    Availability = "in_stock"     // 有货
	AvailabilityOutOfStock Availability = "out_of_stock" // 缺货
	AvailabilityComingSoon Availability = "coming_soon"  // 即将上架
)

// Valid 是否为合法取值
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityInStock, AvailabilityOutOfStock, AvailabilityComingSoon:
		return true
	}
	return false
}

// ==================== Category 分类 ====================

// Category 商品分类
type Category struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null"`
	Slug string `gorm:"size:120;uniqueIndex"`

	// 关联
	Products []Product `gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string {
	return "categories"
}

// BeforeSave 未填 slug 时根据名称生成。对已生成的 slug 再生成一次结果不变。
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}

// ==================== Tag 标签 ====================

// Tag 标签（暂未挂任何关联）
type Tag struct {
	BaseModel
	Name string `gorm:"size:100;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

// ==================== Product 商品主表 ====================

// Product 商品
type Product struct {
	BaseModel
	Name      string `gorm:"size:255;not null"`
	Slug      string `gorm:"size:255;uniqueIndex"`
	IsDigital bool   `gorm:"default:false"`

	// 分类：有商品时禁止删除分类
	CategoryID int64     `gorm:"index;not null"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`

	Description *string `gorm:"type:text"`

	// 金额列一律用 decimal，避免浮点误差
	Price         decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	DiscountPrice decimal.NullDecimal `gorm:"type:decimal(12,2)"`

	Stock        uint         `gorm:"default:0"`
	Availability Availability `gorm:"size:20;default:in_stock"`
	IsActive     bool         `gorm:"default:true"`

	// 不透明存储引用（key，不是 URL），由 StorageProvider 解析
	Image *string `gorm:"size:255"`

	// 一对一扩展（可选）
	DigitalData  *DigitalProduct  `gorm:"foreignKey:ProductID"`
	PhysicalData *PhysicalProduct `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeSave 未填 slug 时根据名称生成
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	return nil
}

// HasDiscount 折扣价存在且低于原价才算有折扣
func (p *Product) HasDiscount() bool {
	return p.DiscountPrice.Valid && p.DiscountPrice.Decimal.LessThan(p.Price)
}

// EffectivePrice 下单时的实际单价
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.HasDiscount() {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}

// ==================== DigitalProduct 数字商品扩展 ====================

// DigitalProduct 数字商品数据，File 为存储 key
type DigitalProduct struct {
	BaseModel
	ProductID *int64   `gorm:"uniqueIndex"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	File string `gorm:"size:255;not null"`
}

func (DigitalProduct) TableName() string {
	return "digital_products"
}

// ==================== PhysicalProduct 实体商品扩展 ====================

// PhysicalProduct 实体商品数据，重量 kg，尺寸 cm
type PhysicalProduct struct {
	BaseModel
	ProductID int64    `gorm:"uniqueIndex;not null"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	Stock  uint            `gorm:"default:0"`
	Weight decimal.Decimal `gorm:"type:decimal(6,2)"`
	Length decimal.Decimal `gorm:"type:decimal(6,2)"`
	Width  decimal.Decimal `gorm:"type:decimal(6,2)"`
	Height decimal.Decimal `gorm:"type:decimal(6,2)"`
}

func (PhysicalProduct) TableName() string {
	return "physical_products"
}
