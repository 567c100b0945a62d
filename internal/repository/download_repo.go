package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shop_core_v1_202608/internal/model"
)

// ==================== DownloadRepository 下载仓库 ====================

// DownloadRepository 数字商品下载仓库接口
type DownloadRepository interface {
	Create(ctx context.Context, download *model.Download) error
	GetByID(ctx context.Context, id int64) (*model.Download, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Download, error)
	ListExpired(ctx context.Context, asOf time.Time, limit int) ([]model.Download, error)
	Delete(ctx context.Context, id int64) error
}

type downloadRepository struct {
	db *gorm.DB
}

// NewDownloadRepository 创建下载仓库
func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &downloadRepository{db: db}
}

func (r *downloadRepository) Create(ctx context.Context, download *model.Download) error {
	return r.db.WithContext(ctx).Create(download).Error
}

func (r *downloadRepository) GetByID(ctx context.Context, id int64) (*model.Download, error) {
	var download model.Download
	err := r.db.WithContext(ctx).Preload("DigitalProduct").First(&download, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &download, nil
}

func (r *downloadRepository) ListByUser(ctx context.Context, userID int64) ([]model.Download, error) {
	var downloads []model.Download
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&downloads).Error
	return downloads, err
}

// ListExpired 过期判定与模型一致：严格早于 asOf
func (r *downloadRepository) ListExpired(ctx context.Context, asOf time.Time, limit int) ([]model.Download, error) {
	var downloads []model.Download
	err := r.db.WithContext(ctx).
		Where("expires_at < ?", asOf).
		Order("expires_at ASC").
		Limit(limit).
		Find(&downloads).Error
	return downloads, err
}

func (r *downloadRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Download{}, id).Error
}
