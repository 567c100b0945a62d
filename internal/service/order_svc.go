package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"shop_core_v1_202608/internal/model"
	"shop_core_v1_202608/internal/repository"
)

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyOrder 订单没有明细
	ErrEmptyOrder = errors.New("order has no items")
	// ErrAlreadyShipped 订单已有发货记录
	ErrAlreadyShipped = errors.New("order already shipped")
)

// ==================== 入参 ====================

// OrderLine 下单行
type OrderLine struct {
	ProductID int64 `validate:"required,gt=0"`
	Quantity  uint  `validate:"required,min=1"`
}

// PlaceOrderInput 下单入参
type PlaceOrderInput struct {
	UserID int64       `validate:"required,gt=0"`
	Lines  []OrderLine `validate:"required,min=1,dive"`
}

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	shipmentRepo repository.ShipmentRepository
	productRepo  repository.ProductRepository
	validate     *validator.Validate
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	productRepo repository.ProductRepository,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		productRepo:  productRepo,
		validate:     validator.New(),
	}
}

// PlaceOrder 下单。单价在此刻快照进明细，之后改价不影响已下订单。
// TODO: 未对库存做原子扣减，并发下单可能超卖；扣减语义待产品确认。
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*model.Order, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid order input: %w", err)
	}

	items := make([]model.OrderItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, line.ProductID)
		}
		items = append(items, model.OrderItem{
			ProductID:        product.ID,
			Quantity:         line.Quantity,
			PriceAtOrderTime: product.EffectivePrice(),
		})
	}

	order := &model.Order{
		UserID: input.UserID,
		Status: model.OrderStatusPending,
		Items:  items,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// OrderTotal 订单总价，空订单为 0
func (s *OrderService) OrderTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	order, err := s.orderRepo.GetByIDWithRelations(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	if order == nil {
		return decimal.Zero, ErrOrderNotFound
	}
	return order.TotalPrice(), nil
}

// MarkPaid 标记已支付
func (s *OrderService) MarkPaid(ctx context.Context, orderID int64) error {
	return s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusPaid)
}

// MarkShipped 建发货记录并把订单置为 shipped。一单只允许一条发货记录。
func (s *OrderService) MarkShipped(ctx context.Context, orderID int64, carrier, trackingNumber string) (*model.Shipment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	existing, err := s.shipmentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyShipped
	}

	shipment := &model.Shipment{
		OrderID:        orderID,
		Carrier:        carrier,
		TrackingNumber: trackingNumber,
	}
	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusShipped); err != nil {
		return nil, err
	}
	return shipment, nil
}

// Complete 标记已完成
func (s *OrderService) Complete(ctx context.Context, orderID int64) error {
	return s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCompleted)
}

// Cancel 标记已取消
func (s *OrderService) Cancel(ctx context.Context, orderID int64) error {
	return s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
}

// StatusLabel 状态展示名。闭合枚举，新增状态时这里必须跟着改。
func StatusLabel(status model.OrderStatus) (string, error) {
	switch status {
	case model.OrderStatusPending:
		return "Pending", nil
	case model.OrderStatusPaid:
		return "Paid", nil
	case model.OrderStatusShipped:
		return "Shipped", nil
	case model.OrderStatusCompleted:
		return "Completed", nil
	case model.OrderStatusCancelled:
		return "Cancelled", nil
	default:
		return "", repository.ErrInvalidOrderStatus
	}
}
