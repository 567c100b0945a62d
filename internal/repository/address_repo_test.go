package repository

import (
	"context"
	"testing"

	"shop_core_v1_202608/internal/model"
)

func TestAddressRepo_SetDefault(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewAddressRepository(db)
	ctx := context.Background()

	user := mustTestUser(t, db, "carol")

	a1 := &model.Address{UserID: user.ID, AddressLine: "1 First St", IsDefault: true}
	a2 := &model.Address{UserID: user.ID, AddressLine: "2 Second St"}
	if err := repo.Create(ctx, a1); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, a2); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.SetDefault(ctx, user.ID, a2.ID); err != nil {
		t.Fatalf("SetDefault() error = %v", err)
	}

	addresses, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("地址数 = %d, want 2", len(addresses))
	}
	// 默认地址排最前，且只有一个默认
	if addresses[0].ID != a2.ID || !addresses[0].IsDefault {
		t.Errorf("新默认地址应排最前: %+v", addresses[0])
	}
	if addresses[1].IsDefault {
		t.Error("旧默认地址应被清掉")
	}
}
