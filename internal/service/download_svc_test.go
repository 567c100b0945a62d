package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"shop_core_v1_202608/internal/model"
	"shop_core_v1_202608/internal/repository"
)

func newDownloadService(db *gorm.DB, ttl time.Duration) *DownloadService {
	return NewDownloadService(
		repository.NewDownloadRepository(db),
		repository.NewProductRepository(db),
		"https://dl.example.com",
		ttl,
	)
}

func newTestDigital(t *testing.T, db *gorm.DB) *model.DigitalProduct {
	_, product := newTestCatalog(t, db)
	digital := &model.DigitalProduct{ProductID: &product.ID, File: "files/x.zip"}
	if err := db.Create(digital).Error; err != nil {
		t.Fatalf("创建数字商品失败: %v", err)
	}
	return digital
}

func TestDownloadService_IssueDownload(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newDownloadService(db, time.Hour)
	ctx := context.Background()

	user := newTestUser(t, db, "dave")
	digital := newTestDigital(t, db)

	before := time.Now()
	download, err := svc.IssueDownload(ctx, user.ID, digital.ID)
	if err != nil {
		t.Fatalf("IssueDownload() error = %v", err)
	}

	if !strings.HasPrefix(download.DownloadURL, "https://dl.example.com/downloads/") {
		t.Errorf("DownloadURL = %q, 前缀不对", download.DownloadURL)
	}
	wantMin := before.Add(time.Hour)
	if download.ExpiresAt.Before(wantMin) || download.ExpiresAt.After(wantMin.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, 应约等于签发时刻 + TTL", download.ExpiresAt)
	}
	if download.IsExpired() {
		t.Error("新签发的下载不应过期")
	}

	// token 随机，两次签发 URL 不同
	second, err := svc.IssueDownload(ctx, user.ID, digital.ID)
	if err != nil {
		t.Fatalf("IssueDownload() error = %v", err)
	}
	if second.DownloadURL == download.DownloadURL {
		t.Error("两次签发的 URL 不应相同")
	}
}

func TestDownloadService_IssueDownloadUnknownProduct(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newDownloadService(db, time.Hour)

	_, err := svc.IssueDownload(context.Background(), 1, 999)
	if !errors.Is(err, ErrDigitalProductNotFound) {
		t.Errorf("IssueDownload() error = %v, want ErrDigitalProductNotFound", err)
	}
}

func TestDownloadService_ListActiveAndPrune(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newDownloadService(db, time.Hour)
	ctx := context.Background()

	user := newTestUser(t, db, "dave")
	digital := newTestDigital(t, db)

	// 一条已过期、一条有效
	expired := &model.Download{
		UserID:           user.ID,
		DigitalProductID: digital.ID,
		DownloadURL:      "u/expired",
		ExpiresAt:        time.Now().Add(-time.Hour),
	}
	active := &model.Download{
		UserID:           user.ID,
		DigitalProductID: digital.ID,
		DownloadURL:      "u/active",
		ExpiresAt:        time.Now().Add(time.Hour),
	}
	for _, d := range []*model.Download{expired, active} {
		if err := db.Create(d).Error; err != nil {
			t.Fatalf("创建下载失败: %v", err)
		}
	}

	got, err := svc.ListActive(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(got) != 1 || got[0].DownloadURL != "u/active" {
		t.Errorf("ListActive() = %+v, 只应返回未过期的", got)
	}

	pruned, err := svc.PruneExpired(ctx, 10)
	if err != nil {
		t.Fatalf("PruneExpired() error = %v", err)
	}
	if pruned != 1 {
		t.Errorf("PruneExpired() = %d, want 1", pruned)
	}

	var count int64
	db.Model(&model.Download{}).Count(&count)
	if count != 1 {
		t.Errorf("清理后应只剩 1 条，实际 %d", count)
	}
}
