package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== 订单状态 ====================

// OrderStatus 订单状态（闭合枚举，消费处必须穷举）
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // 待支付
	OrderStatusPaid      OrderStatus = "paid"      // 已支付
	OrderStatusShipped   OrderStatus = "shipped"   // 已发货
	OrderStatusCompleted OrderStatus = "completed" // 已完成
	OrderStatusCancelled OrderStatus = "cancelled" // 已取消
)

// Valid 是否为合法取值
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ==================== Address 收货地址 ====================

// Address 用户收货地址
type Address struct {
	BaseModel
	UserID int64 `gorm:"index;not null"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	IsDefault   bool   `gorm:"default:false"`
	AddressLine string `gorm:"size:255;not null"`
	City        string `gorm:"size:100"`
	State       string `gorm:"size:100"`
	PostalCode  string `gorm:"size:20"`
}

func (Address) TableName() string {
	return "addresses"
}

// ==================== Order 订单主表 ====================

// Order 订单
type Order struct {
	BaseModel
	UserID int64 `gorm:"index;not null"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Status OrderStatus `gorm:"size:20;index;default:pending"`

	// 关联
	Items    []OrderItem `gorm:"foreignKey:OrderID"`
	Shipment *Shipment   `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// TotalPrice 订单总价 = 各明细小计之和。只读派生值，不落库。
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].TotalPrice())
	}
	return total
}

// ==================== OrderItem 订单明细 ====================

// OrderItem 订单明细，单价取下单时刻快照
type OrderItem struct {
	BaseModel
	OrderID int64  `gorm:"index;not null"`
	Order   *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	Quantity         uint            `gorm:"default:1;not null"`
	PriceAtOrderTime decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// TotalPrice 明细小计 = 数量 × 下单时单价（精确 decimal 运算）
func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.PriceAtOrderTime.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ==================== Shipment 发货记录 ====================

// Shipment 发货记录，一个订单至多一条
type Shipment struct {
	BaseModel
	OrderID int64  `gorm:"uniqueIndex;not null"`
	Order   *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Carrier        string    `gorm:"size:100"`
	TrackingNumber string    `gorm:"size:100"`
	ShippedAt      time.Time `gorm:"not null"`
}

func (Shipment) TableName() string {
	return "shipments"
}

// ==================== Download 数字商品下载 ====================

// Download 数字商品下载授权
type Download struct {
	BaseModel
	UserID int64 `gorm:"index;not null"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	DigitalProductID int64           `gorm:"index;not null"`
	DigitalProduct   *DigitalProduct `gorm:"foreignKey:DigitalProductID;constraint:OnDelete:CASCADE"`

	DownloadURL string    `gorm:"size:512;not null"`
	ExpiresAt   time.Time `gorm:"not null"`
}

func (Download) TableName() string {
	return "downloads"
}

// IsExpiredAt 严格晚于 ExpiresAt 才算过期，恰好相等不算
func (d *Download) IsExpiredAt(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

// IsExpired 按当前时间判断，每次调用重新求值
func (d *Download) IsExpired() bool {
	return d.IsExpiredAt(time.Now())
}
