package main

import (
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shop_core_v1_202608/internal/model"
	"shop_core_v1_202608/internal/repository"
	"shop_core_v1_202608/internal/service"
	"shop_core_v1_202608/pkg/config"
	"shop_core_v1_202608/pkg/database"
	"shop_core_v1_202608/pkg/logger"
)

func main() {
	// 1. 配置
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// 2. 日志
	logger.Initialize(cfg.Env)
	defer logger.Sync()

	// 3. 数据库 + 建表
	db := initDatabase(cfg)

	// 4. 依赖
	initDependencies(db, cfg)
	logger.Log.Info("schema ready",
		zap.String("env", cfg.Env),
		zap.String("db", cfg.Database.Name),
		zap.String("storage", cfg.Storage.Provider))
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB       *gorm.DB
	Repos    *Repositories
	Services *Services
}

// Repositories 仓库集合
type Repositories struct {
	User     repository.UserRepository
	Category repository.CategoryRepository
	Tag      repository.TagRepository
	Product  repository.ProductRepository
	Order    repository.OrderRepository
	Shipment repository.ShipmentRepository
	Address  repository.AddressRepository
	Download repository.DownloadRepository
}

// Services 服务集合
type Services struct {
	Account  *service.AccountService
	Catalog  *service.CatalogService
	Order    *service.OrderService
	Download *service.DownloadService
	Storage  *service.StorageService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库并迁移全部表
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(
		cfg.Database.DSN(),
		// Account
		&model.Identity{}, &model.User{},
		// Product
		&model.Category{}, &model.Tag{}, &model.Product{},
		&model.DigitalProduct{}, &model.PhysicalProduct{},
		// Orders
		&model.Address{}, &model.Order{}, &model.OrderItem{},
		&model.Shipment{}, &model.Download{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config) *Dependencies {
	repos := &Repositories{
		User:     repository.NewUserRepository(db),
		Category: repository.NewCategoryRepository(db),
		Tag:      repository.NewTagRepository(db),
		Product:  repository.NewProductRepository(db),
		Order:    repository.NewOrderRepository(db),
		Shipment: repository.NewShipmentRepository(db),
		Address:  repository.NewAddressRepository(db),
		Download: repository.NewDownloadRepository(db),
	}

	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Log.Fatal("init storage failed", zap.Error(err))
	}

	services := &Services{
		Account:  service.NewAccountService(repos.User),
		Catalog:  service.NewCatalogService(repos.Category, repos.Product, repos.Tag),
		Order:    service.NewOrderService(repos.Order, repos.Shipment, repos.Product),
		Download: service.NewDownloadService(repos.Download, repos.Product, cfg.Download.BaseURL, cfg.Download.TTL),
		Storage:  storageSvc,
	}

	return &Dependencies{DB: db, Repos: repos, Services: services}
}
