package repository

import (
	"testing"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupStateRepositoryTest(t *testing.T) *BlobStateRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StateBlob{}); err != nil {
		t.Fatalf("migrate state_blobs failed: %v", err)
	}
	return NewStateRepository(NewGormBlobStore(db))
}

func TestCartMirrorRoundTrip(t *testing.T) {
	repo := setupStateRepositoryTest(t)

	items := []models.CartItem{
		{
			ArtworkID: "madhubani-peacock",
			Title:     "Madhubani Peacock",
			Price:     models.NewMoneyFromFloat(2000),
			Quantity:  2,
			Size:      "medium",
			Format:    "canvas",
		},
		{
			ArtworkID: "warli-harvest",
			Title:     "Warli Harvest Dance",
			Price:     models.NewMoneyFromFloat(1500),
			Quantity:  1,
			Size:      "small",
			Format:    "paper",
		},
	}
	if err := repo.SaveCart("user:1", items); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}

	loaded, err := repo.LoadCart("user:1")
	if err != nil {
		t.Fatalf("LoadCart: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded))
	}
	if loaded[0].ArtworkID != "madhubani-peacock" || loaded[0].Quantity != 2 {
		t.Fatalf("unexpected first item: %+v", loaded[0])
	}
	if loaded[0].Price.String() != "2000.00" {
		t.Fatalf("price lost precision: %s", loaded[0].Price.String())
	}
}

func TestCartMirrorOverwrite(t *testing.T) {
	repo := setupStateRepositoryTest(t)

	if err := repo.SaveCart("user:1", []models.CartItem{{ArtworkID: "a", Title: "A", Quantity: 1}}); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}
	if err := repo.SaveCart("user:1", nil); err != nil {
		t.Fatalf("SaveCart empty: %v", err)
	}

	loaded, err := repo.LoadCart("user:1")
	if err != nil {
		t.Fatalf("LoadCart: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("overwrite with empty cart failed, got %d items", len(loaded))
	}
}

func TestLoadCartMissingOwner(t *testing.T) {
	repo := setupStateRepositoryTest(t)

	loaded, err := repo.LoadCart("user:404")
	if err != nil {
		t.Fatalf("missing key should not error: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(loaded))
	}
}

func TestLoadCartCorruptBlob(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StateBlob{}); err != nil {
		t.Fatalf("migrate state_blobs failed: %v", err)
	}

	blob := models.StateBlob{Key: constants.StateKeyCartPrefix + "user:1", Value: "{not json"}
	if err := db.Create(&blob).Error; err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	repo := NewStateRepository(NewGormBlobStore(db))
	if _, err := repo.LoadCart("user:1"); err == nil {
		t.Fatalf("corrupt blob should surface an error")
	}
}

func TestOrdersMirrorRoundTrip(t *testing.T) {
	repo := setupStateRepositoryTest(t)

	orders := []models.Order{
		{
			OrderNo: "ORD-2026-A1B2C3",
			Status:  constants.OrderStatusPlaced,
			Items: []models.CartItem{
				{ArtworkID: "tanjore-krishna", Title: "Tanjore Krishna", Price: models.NewMoneyFromFloat(7500), Quantity: 1},
			},
			Subtotal: models.NewMoneyFromFloat(7500),
			Total:    models.NewMoneyFromFloat(8850),
		},
	}
	if err := repo.SaveOrders("user:1", orders); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}

	loaded, err := repo.LoadOrders("user:1")
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 order, got %d", len(loaded))
	}
	if loaded[0].OrderNo != "ORD-2026-A1B2C3" || len(loaded[0].Items) != 1 {
		t.Fatalf("unexpected order: %+v", loaded[0])
	}
}
