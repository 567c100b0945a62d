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
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNegativePrice 价格为负
	ErrNegativePrice = errors.New("price must be non-negative")
	// ErrInvalidAvailability 非法的可售状态
	ErrInvalidAvailability = errors.New("invalid availability value")
)

// ==================== 入参 ====================

// CreateProductInput 建品入参。Slug 留空则保存时自动生成。
type CreateProductInput struct {
	Name          string `validate:"required,max=255"`
	Slug          string `validate:"omitempty,max=255"`
	CategoryID    int64  `validate:"required,gt=0"`
	Description   *string
	Price         decimal.Decimal
	DiscountPrice decimal.NullDecimal
	Stock         uint
	Availability  model.Availability
	IsDigital     bool
	IsActive      bool
	Image         *string `validate:"omitempty,max=255"`
}

// PhysicalDataInput 实体商品扩展入参（kg / cm）
type PhysicalDataInput struct {
	Stock  uint
	Weight decimal.Decimal
	Length decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
}

// ==================== CatalogService 目录服务 ====================

// CatalogService 商品目录服务
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	tagRepo      repository.TagRepository
	validate     *validator.Validate
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	tagRepo repository.TagRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		tagRepo:      tagRepo,
		validate:     validator.New(),
	}
}

// CreateCategory slug 留空则由模型钩子生成
func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	category := &model.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 分类下有商品时返回 repository.ErrCategoryInUse
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}

// CreateProduct 校验后落库。价格非负；折扣价可空，不做额外约束。
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid product input: %w", err)
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	availability := input.Availability
	if availability == "" {
		availability = model.AvailabilityInStock
	}
	if !availability.Valid() {
		return nil, ErrInvalidAvailability
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	product := &model.Product{
		Name:          input.Name,
		Slug:          input.Slug,
		CategoryID:    input.CategoryID,
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Stock:         input.Stock,
		Availability:  availability,
		IsDigital:     input.IsDigital,
		IsActive:      input.IsActive,
		Image:         input.Image,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// AttachDigitalData 挂数字商品扩展，file 为存储 key
func (s *CatalogService) AttachDigitalData(ctx context.Context, productID int64, file string) (*model.DigitalProduct, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	data := &model.DigitalProduct{ProductID: &product.ID, File: file}
	if err := s.productRepo.AttachDigital(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// AttachPhysicalData 挂实体商品扩展
func (s *CatalogService) AttachPhysicalData(ctx context.Context, productID int64, input PhysicalDataInput) (*model.PhysicalProduct, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	data := &model.PhysicalProduct{
		ProductID: product.ID,
		Stock:     input.Stock,
		Weight:    input.Weight,
		Length:    input.Length,
		Width:     input.Width,
		Height:    input.Height,
	}
	if err := s.productRepo.AttachPhysical(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SetAvailability 穷举三种取值，其余一律拒绝
func (s *CatalogService) SetAvailability(ctx context.Context, productID int64, availability model.Availability) error {
	switch availability {
	case model.AvailabilityInStock, model.AvailabilityOutOfStock, model.AvailabilityComingSoon:
	default:
		return ErrInvalidAvailability
	}
	return s.productRepo.UpdateFields(ctx, productID, map[string]interface{}{
		"availability": availability,
	})
}

// ListProducts 默认最新在前
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, filter)
}

// GetProduct 取商品及其扩展
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByIDWithExtensions(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
