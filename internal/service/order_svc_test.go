package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shop_core_v1_202608/internal/model"
	"shop_core_v1_202608/internal/repository"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewShipmentRepository(db),
		repository.NewProductRepository(db),
	)
}

func TestOrderService_PlaceOrderCapturesPrice(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	user := newTestUser(t, db, "buyer")
	_, product := newTestCatalog(t, db)

	order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		UserID: user.ID,
		Lines:  []OrderLine{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("Status = %q, want pending", order.Status)
	}

	// 之后改价不影响已下订单的快照价
	if err := db.Model(&model.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("99.99")).Error; err != nil {
		t.Fatalf("改价失败: %v", err)
	}

	total, err := svc.OrderTotal(ctx, order.ID)
	if err != nil {
		t.Fatalf("OrderTotal() error = %v", err)
	}
	if !total.Equal(decimal.RequireFromString("19.98")) {
		t.Errorf("OrderTotal() = %s, want 19.98（下单时快照价）", total)
	}
}

func TestOrderService_PlaceOrderUsesDiscountPrice(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	user := newTestUser(t, db, "buyer")
	_, product := newTestCatalog(t, db)
	if err := db.Model(&model.Product{}).Where("id = ?", product.ID).
		Update("discount_price", decimal.RequireFromString("7.50")).Error; err != nil {
		t.Fatalf("设置折扣价失败: %v", err)
	}

	order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		UserID: user.ID,
		Lines:  []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	total, err := svc.OrderTotal(ctx, order.ID)
	if err != nil {
		t.Fatalf("OrderTotal() error = %v", err)
	}
	if !total.Equal(decimal.RequireFromString("7.50")) {
		t.Errorf("OrderTotal() = %s, want 7.50（生效折扣价）", total)
	}
}

func TestOrderService_PlaceOrderValidation(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	// 空明细
	if _, err := svc.PlaceOrder(ctx, PlaceOrderInput{UserID: 1}); err == nil {
		t.Error("空订单应被拒绝")
	}
	// 数量为 0
	if _, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		UserID: 1,
		Lines:  []OrderLine{{ProductID: 1, Quantity: 0}},
	}); err == nil {
		t.Error("数量必须至少为 1")
	}
	// 商品不存在
	_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		UserID: 1,
		Lines:  []OrderLine{{ProductID: 999, Quantity: 1}},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("PlaceOrder() error = %v, want ErrProductNotFound", err)
	}
}

func TestOrderService_MarkShipped(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	user := newTestUser(t, db, "buyer")
	_, product := newTestCatalog(t, db)

	order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		UserID: user.ID,
		Lines:  []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	shipment, err := svc.MarkShipped(ctx, order.ID, "DHL", "TRACK123")
	if err != nil {
		t.Fatalf("MarkShipped() error = %v", err)
	}
	if shipment.ShippedAt.IsZero() {
		t.Error("ShippedAt 应有默认时间")
	}

	got, err := repository.NewOrderRepository(db).GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != model.OrderStatusShipped {
		t.Errorf("Status = %q, want shipped", got.Status)
	}

	// 重复发货被拒绝
	if _, err := svc.MarkShipped(ctx, order.ID, "UPS", "TRACK456"); !errors.Is(err, ErrAlreadyShipped) {
		t.Errorf("MarkShipped() error = %v, want ErrAlreadyShipped", err)
	}
}

func TestStatusLabel(t *testing.T) {
	label, err := StatusLabel(model.OrderStatusPaid)
	if err != nil || label != "Paid" {
		t.Errorf("StatusLabel(paid) = %q, %v", label, err)
	}
	if _, err := StatusLabel(model.OrderStatus("refunded")); err == nil {
		t.Error("未定义状态应报错")
	}
}
