package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop_core_v1_202608/internal/model"
	"shop_core_v1_202608/internal/repository"
)

// setupSvcTestDB 内存 sqlite + 全量建表
func setupSvcTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.Identity{}, &model.User{},
		&model.Category{}, &model.Tag{}, &model.Product{},
		&model.DigitalProduct{}, &model.PhysicalProduct{},
		&model.Address{}, &model.Order{}, &model.OrderItem{},
		&model.Shipment{}, &model.Download{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	repo := repository.NewUserRepository(db)
	identity := &model.Identity{Username: username, PasswordHash: "x"}
	user := &model.User{FirstName: "Test", LastName: "User", Phone: "12345678901"}
	if err := repo.Create(context.Background(), identity, user); err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

func newTestCatalog(t *testing.T, db *gorm.DB) (*model.Category, *model.Product) {
	category := &model.Category{Name: "Mugs"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}
	product := &model.Product{
		Name:       "Red Mug",
		CategoryID: category.ID,
		Price:      decimal.RequireFromString("9.99"),
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("创建测试商品失败: %v", err)
	}
	return category, product
}
