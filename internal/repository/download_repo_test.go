package repository

import (
	"context"
	"testing"
	"time"

	"shop_core_v1_202608/internal/model"
)

func TestDownloadRepo_ListExpired(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewDownloadRepository(db)
	ctx := context.Background()

	user := mustTestUser(t, db, "dave")
	category := mustTestCategory(t, db, "Software")
	product := mustTestProduct(t, db, category.ID, "Tool", "1.00")
	digital := &model.DigitalProduct{ProductID: &product.ID, File: "tools/t.zip"}
	if err := db.Create(digital).Error; err != nil {
		t.Fatalf("创建数字商品失败: %v", err)
	}

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	fixtures := []struct {
		url       string
		expiresAt time.Time
	}{
		{"u/expired", now.Add(-time.Hour)},
		{"u/boundary", now}, // 恰好到期，不算过期
		{"u/active", now.Add(time.Hour)},
	}
	for _, f := range fixtures {
		err := repo.Create(ctx, &model.Download{
			UserID:           user.ID,
			DigitalProductID: digital.ID,
			DownloadURL:      f.url,
			ExpiresAt:        f.expiresAt,
		})
		if err != nil {
			t.Fatalf("创建下载失败: %v", err)
		}
	}

	expired, err := repo.ListExpired(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListExpired() error = %v", err)
	}
	if len(expired) != 1 || expired[0].DownloadURL != "u/expired" {
		t.Errorf("ListExpired() = %+v, 只应命中严格早于 asOf 的记录", expired)
	}
}
