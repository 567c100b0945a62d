package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shop_core_v1_202608/internal/model"
	"shop_core_v1_202608/internal/repository"
)

// ErrDigitalProductNotFound 数字商品不存在
var ErrDigitalProductNotFound = errors.New("digital product not found")

// ==================== DownloadService 下载服务 ====================

// DownloadService 数字商品下载授权服务
type DownloadService struct {
	downloadRepo repository.DownloadRepository
	productRepo  repository.ProductRepository

	baseURL string        // 下载链接前缀，如 https://dl.example.com
	ttl     time.Duration // 链接有效期
}

// NewDownloadService 创建下载服务
func NewDownloadService(
	downloadRepo repository.DownloadRepository,
	productRepo repository.ProductRepository,
	baseURL string,
	ttl time.Duration,
) *DownloadService {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &DownloadService{
		downloadRepo: downloadRepo,
		productRepo:  productRepo,
		baseURL:      baseURL,
		ttl:          ttl,
	}
}

// IssueDownload 给用户签发一条带过期时间的下载授权，URL 带随机 token
func (s *DownloadService) IssueDownload(ctx context.Context, userID, digitalProductID int64) (*model.Download, error) {
	data, err := s.productRepo.GetDigitalByID(ctx, digitalProductID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrDigitalProductNotFound
	}

	download := &model.Download{
		UserID:           userID,
		DigitalProductID: digitalProductID,
		DownloadURL:      fmt.Sprintf("%s/downloads/%s", s.baseURL, uuid.New().String()),
		ExpiresAt:        time.Now().Add(s.ttl),
	}
	if err := s.downloadRepo.Create(ctx, download); err != nil {
		return nil, err
	}
	return download, nil
}

// ListActive 列出用户未过期的下载授权
func (s *DownloadService) ListActive(ctx context.Context, userID int64) ([]model.Download, error) {
	downloads, err := s.downloadRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	active := downloads[:0]
	for _, d := range downloads {
		if !d.IsExpiredAt(now) {
			active = append(active, d)
		}
	}
	return active, nil
}

// PruneExpired 清理已过期授权，返回清掉的条数
func (s *DownloadService) PruneExpired(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	expired, err := s.downloadRepo.ListExpired(ctx, time.Now(), batchSize)
	if err != nil {
		return 0, err
	}
	for _, d := range expired {
		if err := s.downloadRepo.Delete(ctx, d.ID); err != nil {
			return 0, err
		}
	}
	return len(expired), nil
}
