package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tigawane/internal/domain/sharing"
	"tigawane/internal/infrastructure/persistence/sqlite/model"
	"tigawane/internal/ports"
)

func setupItemRepository(t *testing.T) *ItemRepository {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "items.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(&model.Item{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewItemRepository(db)
}

func testItem(owner, category, itemType string) ports.ItemRecord {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return ports.ItemRecord{
		ItemID:         uuid.NewString(),
		OwnerID:        owner,
		Title:          "Bag of maize flour",
		Category:       category,
		ItemType:       itemType,
		Quantity:       1,
		PickupAddress:  "Area 25, Lilongwe",
		Latitude:       -13.9626,
		Longitude:      33.7741,
		LocationSource: "geocoded",
		Status:         sharing.ItemAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestListItemsAppliesFilters(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	maize := testItem("user-a", "grains", sharing.ItemTypeFood)
	if err := repo.CreateItem(ctx, maize); err != nil {
		t.Fatalf("create maize: %v", err)
	}
	chair := testItem("user-b", "furniture", sharing.ItemTypeNonFood)
	if err := repo.CreateItem(ctx, chair); err != nil {
		t.Fatalf("create chair: %v", err)
	}
	done := testItem("user-a", "vegetables", sharing.ItemTypeFood)
	done.Status = sharing.ItemCompleted
	if err := repo.CreateItem(ctx, done); err != nil {
		t.Fatalf("create completed item: %v", err)
	}

	items, err := repo.ListItems(ctx, ports.ItemFilter{OwnerID: "user-a"})
	if err != nil {
		t.Fatalf("ListItems(owner) error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ListItems(owner) len = %d, want 1", len(items))
	}
	if items[0].ItemID != maize.ItemID {
		t.Fatalf("ListItems(owner) item_id = %q, want %q", items[0].ItemID, maize.ItemID)
	}

	items, err = repo.ListItems(ctx, ports.ItemFilter{OwnerID: "user-a", IncludeComplete: true})
	if err != nil {
		t.Fatalf("ListItems(include complete) error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ListItems(include complete) len = %d, want 2", len(items))
	}

	items, err = repo.ListItems(ctx, ports.ItemFilter{ItemType: sharing.ItemTypeNonFood})
	if err != nil {
		t.Fatalf("ListItems(item type) error = %v", err)
	}
	if len(items) != 1 || items[0].ItemID != chair.ItemID {
		t.Fatalf("ListItems(item type) = %+v, want only chair", items)
	}
}

func TestListItemsInBounds(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	lilongwe := testItem("user-a", "grains", sharing.ItemTypeFood)
	if err := repo.CreateItem(ctx, lilongwe); err != nil {
		t.Fatalf("create lilongwe item: %v", err)
	}
	blantyre := testItem("user-b", "grains", sharing.ItemTypeFood)
	blantyre.Latitude = -15.7861
	blantyre.Longitude = 35.0058
	if err := repo.CreateItem(ctx, blantyre); err != nil {
		t.Fatalf("create blantyre item: %v", err)
	}
	claimed := testItem("user-c", "grains", sharing.ItemTypeFood)
	claimed.Status = sharing.ItemReserved
	if err := repo.CreateItem(ctx, claimed); err != nil {
		t.Fatalf("create reserved item: %v", err)
	}

	bounds := ports.Bounds{MinLat: -14.1, MaxLat: -13.8, MinLon: 33.6, MaxLon: 33.9}
	items, err := repo.ListItemsInBounds(ctx, bounds, sharing.ItemAvailable)
	if err != nil {
		t.Fatalf("ListItemsInBounds() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ListItemsInBounds() len = %d, want 1", len(items))
	}
	if items[0].ItemID != lilongwe.ItemID {
		t.Fatalf("ListItemsInBounds() item_id = %q, want %q", items[0].ItemID, lilongwe.ItemID)
	}
}

func TestSetItemStatusMissingItem(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	err := repo.SetItemStatus(ctx, "no-such-item", sharing.ItemReserved, now)
	if !errors.Is(err, ports.ErrItemNotFound) {
		t.Fatalf("SetItemStatus() error = %v, want ErrItemNotFound", err)
	}

	item := testItem("user-a", "grains", sharing.ItemTypeFood)
	if err := repo.CreateItem(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := repo.SetItemStatus(ctx, item.ItemID, sharing.ItemReserved, now); err != nil {
		t.Fatalf("SetItemStatus() error = %v", err)
	}
	got, err := repo.GetItem(ctx, item.ItemID)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if got.Status != sharing.ItemReserved {
		t.Fatalf("GetItem() status = %q, want %q", got.Status, sharing.ItemReserved)
	}
}

func TestCountItems(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	available := testItem("user-a", "grains", sharing.ItemTypeFood)
	if err := repo.CreateItem(ctx, available); err != nil {
		t.Fatalf("create available item: %v", err)
	}
	completed := testItem("user-b", "furniture", sharing.ItemTypeNonFood)
	completed.Status = sharing.ItemCompleted
	if err := repo.CreateItem(ctx, completed); err != nil {
		t.Fatalf("create completed item: %v", err)
	}

	counts, err := repo.CountItems(ctx)
	if err != nil {
		t.Fatalf("CountItems() error = %v", err)
	}
	if counts.Total != 2 {
		t.Fatalf("CountItems() total = %d, want 2", counts.Total)
	}
	if counts.Available != 1 {
		t.Fatalf("CountItems() available = %d, want 1", counts.Available)
	}
	if counts.Completed != 1 {
		t.Fatalf("CountItems() completed = %d, want 1", counts.Completed)
	}
	if counts.FoodItems != 1 {
		t.Fatalf("CountItems() food = %d, want 1", counts.FoodItems)
	}
}
