package inventory

import (
	"errors"
	"testing"
	"time"

	"delights/models"
)

func TestCreatePurchaseConsumesStock(t *testing.T) {
	db := openTestDB(t)
	item, flour, egg := pancakes(t, db)

	purchase, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("CreatePurchase() error = %v", err)
	}
	if purchase.MenuItemTitle != "pancakes" || purchase.MenuItemID == nil || *purchase.MenuItemID != item.ID {
		t.Fatalf("unexpected purchase: %+v", purchase)
	}
	if purchase.Timestamp.IsZero() {
		t.Fatal("expected timestamp to default to now")
	}
	assertStock(t, db, flour.ID, "6")
	assertStock(t, db, egg.ID, "1")
}

func TestCreatePurchaseValidation(t *testing.T) {
	db := openTestDB(t)
	item, flour, _ := pancakes(t, db)

	if _, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: item.ID, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("CreatePurchase(qty 0) error = %v", err)
	}
	if _, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: 404, Quantity: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("CreatePurchase(unknown item) error = %v", err)
	}

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no purchases to persist, got %d", count)
	}
	assertStock(t, db, flour.ID, "10")
}

func TestCreatePurchaseKeepsExplicitTimestamp(t *testing.T) {
	db := openTestDB(t)
	item, _, _ := pancakes(t, db)

	at := time.Date(2022, 2, 5, 12, 26, 0, 0, time.UTC)
	purchase, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: item.ID, Quantity: 1, Timestamp: at})
	if err != nil {
		t.Fatalf("CreatePurchase() error = %v", err)
	}
	stored, err := GetPurchase(bg, db, purchase.ID)
	if err != nil {
		t.Fatalf("GetPurchase() error = %v", err)
	}
	if !stored.Timestamp.Equal(at) {
		t.Fatalf("timestamp = %s, want %s", stored.Timestamp, at)
	}
}

func TestUpdatePurchaseAdjustsByDifference(t *testing.T) {
	db := openTestDB(t)
	item, flour, egg := pancakes(t, db)

	purchase, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("CreatePurchase() error = %v", err)
	}
	assertStock(t, db, flour.ID, "8")

	updated, err := UpdatePurchaseQuantity(bg, db, purchase.ID, 3)
	if err != nil {
		t.Fatalf("UpdatePurchaseQuantity(3) error = %v", err)
	}
	if updated.Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", updated.Quantity)
	}
	assertStock(t, db, flour.ID, "4")
	assertStock(t, db, egg.ID, "0")

	if _, err := UpdatePurchaseQuantity(bg, db, purchase.ID, 2); err != nil {
		t.Fatalf("UpdatePurchaseQuantity(2) error = %v", err)
	}
	assertStock(t, db, flour.ID, "6")
	assertStock(t, db, egg.ID, "1")

	if _, err := UpdatePurchaseQuantity(bg, db, purchase.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("UpdatePurchaseQuantity(0) error = %v", err)
	}
}

func TestDeletePurchaseRestoresStock(t *testing.T) {
	db := openTestDB(t)
	item, flour, egg := pancakes(t, db)

	purchase, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: item.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("CreatePurchase() error = %v", err)
	}
	assertStock(t, db, flour.ID, "4")

	if err := DeletePurchase(bg, db, purchase.ID, true); err != nil {
		t.Fatalf("DeletePurchase(restock) error = %v", err)
	}
	assertStock(t, db, flour.ID, "10")
	assertStock(t, db, egg.ID, "3")

	if _, err := GetPurchase(bg, db, purchase.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPurchase() after delete error = %v", err)
	}
}

func TestDeletePurchaseWithoutRestock(t *testing.T) {
	db := openTestDB(t)
	item, flour, _ := pancakes(t, db)

	purchase, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("CreatePurchase() error = %v", err)
	}
	if err := DeletePurchase(bg, db, purchase.ID, false); err != nil {
		t.Fatalf("DeletePurchase() error = %v", err)
	}
	assertStock(t, db, flour.ID, "8")
}

func TestDeletePurchaseOfDeletedMenuItem(t *testing.T) {
	db := openTestDB(t)
	item, flour, _ := pancakes(t, db)

	purchase, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("CreatePurchase() error = %v", err)
	}
	if err := DeleteMenuItem(bg, db, item.ID); err != nil {
		t.Fatalf("DeleteMenuItem() error = %v", err)
	}

	orphan, err := GetPurchase(bg, db, purchase.ID)
	if err != nil {
		t.Fatalf("GetPurchase() error = %v", err)
	}
	if orphan.MenuItemID != nil || orphan.MenuItemTitle != "pancakes" {
		t.Fatalf("expected detached purchase with title snapshot, got %+v", orphan)
	}

	if err := DeletePurchase(bg, db, purchase.ID, true); !errors.Is(err, ErrMenuItemGone) {
		t.Fatalf("DeletePurchase(restock) error = %v, want ErrMenuItemGone", err)
	}
	if _, err := UpdatePurchaseQuantity(bg, db, purchase.ID, 4); !errors.Is(err, ErrMenuItemGone) {
		t.Fatalf("UpdatePurchaseQuantity() error = %v, want ErrMenuItemGone", err)
	}
	if err := DeletePurchase(bg, db, purchase.ID, false); err != nil {
		t.Fatalf("DeletePurchase(no restock) error = %v", err)
	}
	assertStock(t, db, flour.ID, "8")
}

func TestListPurchasesInTimeOrder(t *testing.T) {
	db := openTestDB(t)
	item, _, _ := pancakes(t, db)

	later := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)
	for _, at := range []time.Time{later, earlier} {
		if _, err := CreatePurchase(bg, db, PurchaseInput{MenuItemID: item.ID, Quantity: 1, Timestamp: at}); err != nil {
			t.Fatalf("CreatePurchase() error = %v", err)
		}
	}

	purchases, err := ListPurchases(bg, db)
	if err != nil {
		t.Fatalf("ListPurchases() error = %v", err)
	}
	if len(purchases) != 2 || !purchases[0].Timestamp.Equal(earlier) {
		t.Fatalf("expected purchases ordered by timestamp, got %+v", purchases)
	}
}
