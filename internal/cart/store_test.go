package cart

import (
	"context"
	"errors"
	"testing"

	"storefront-cart/internal/domain"
	"storefront-cart/internal/storage"
)

func snapshot(price int64) domain.ProductSnapshot {
	return domain.ProductSnapshot{
		ID:            "prod",
		Name:          "Test Product",
		PriceCents:    price,
		Status:        domain.ProductStatusActive,
		StockQuantity: 10,
	}
}

func TestAddItemNewLine(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := New(mem, nil)

	item, err := store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 1, Product: snapshot(10)})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.ID != "A" || item.Quantity != 1 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if got := store.ItemCount(); got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}
	if got := store.Subtotal(); got != 10 {
		t.Fatalf("expected subtotal 10, got %d", got)
	}
	if store.IsEmpty() {
		t.Fatalf("cart should not be empty")
	}
	if mem.Saves != 1 {
		t.Fatalf("expected 1 save, got %d", mem.Saves)
	}
}

func TestAddItemMergesDuplicates(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemory(), nil)

	if _, err := store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 1, Product: snapshot(10)}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 2, Product: snapshot(10)}); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if store.ItemCount() != 3 || store.Subtotal() != 30 {
		t.Fatalf("count=%d subtotal=%d", store.ItemCount(), store.Subtotal())
	}
}

func TestAddItemDistinctVariantsStaySeparate(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemory(), nil)

	store.AddItem(ctx, AddInput{ProductID: "A", VariantID: "v1", Quantity: 1, Product: snapshot(10)})
	store.AddItem(ctx, AddInput{ProductID: "A", VariantID: "v2", Quantity: 1, Product: snapshot(10)})

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ID != "A:v1" || items[1].ID != "A:v2" {
		t.Fatalf("unexpected ids: %s %s", items[0].ID, items[1].ID)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	store := New(storage.NewMemory(), nil)
	for _, qty := range []int{0, -3} {
		if _, err := store.AddItem(context.Background(), AddInput{ProductID: "A", Quantity: qty, Product: snapshot(10)}); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if !store.IsEmpty() {
		t.Fatalf("rejected adds must not mutate the cart")
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemory(), nil)
	store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 2, Product: snapshot(10)})

	store.UpdateQuantity(ctx, "A", 0)

	if !store.IsEmpty() || store.ItemCount() != 0 {
		t.Fatalf("expected empty cart, count=%d", store.ItemCount())
	}
}

func TestUpdateQuantityReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemory(), nil)
	store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 2, Product: snapshot(10)})
	store.AddItem(ctx, AddInput{ProductID: "B", Quantity: 1, Product: snapshot(20)})

	store.UpdateQuantity(ctx, "A", 5)

	items := store.Items()
	if len(items) != 2 || items[0].ID != "A" || items[0].Quantity != 5 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if store.ItemCount() != 6 || store.Subtotal() != 70 {
		t.Fatalf("count=%d subtotal=%d", store.ItemCount(), store.Subtotal())
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := New(mem, nil)
	store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 1, Product: snapshot(10)})
	savesBefore := mem.Saves

	store.RemoveItem(ctx, "missing")

	if store.ItemCount() != 1 {
		t.Fatalf("cart mutated by removing absent id")
	}
	if mem.Saves != savesBefore {
		t.Fatalf("no-op removal must not persist")
	}
}

func TestClearPersistsEmptyList(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := New(mem, nil)
	store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 3, Product: snapshot(10)})

	store.Clear(ctx)

	if !store.IsEmpty() {
		t.Fatalf("cart not empty after Clear")
	}
	persisted, err := mem.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("expected empty persisted list, got %+v", persisted)
	}
}

func TestOpenCloseToggleDoNotPersist(t *testing.T) {
	mem := storage.NewMemory()
	store := New(mem, nil)

	store.Open()
	if !store.IsOpen() {
		t.Fatalf("expected open")
	}
	store.Close()
	if store.IsOpen() {
		t.Fatalf("expected closed")
	}
	if open := store.Toggle(); !open || !store.IsOpen() {
		t.Fatalf("toggle should open")
	}
	if mem.Saves != 0 {
		t.Fatalf("visibility flag must never persist, saves=%d", mem.Saves)
	}
}

func TestSaveFailureKeepsCartOperational(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	mem.SaveErr = errors.New("quota exceeded")
	store := New(mem, nil)

	if _, err := store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 1, Product: snapshot(10)}); err != nil {
		t.Fatalf("persistence failure must not surface: %v", err)
	}
	if store.ItemCount() != 1 {
		t.Fatalf("in-memory state lost on persistence failure")
	}
}

func TestGetAndIsInCart(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemory(), nil)
	store.AddItem(ctx, AddInput{ProductID: "A", VariantID: "v1", Quantity: 1, Product: snapshot(10)})

	if !store.IsInCart("A", "v1") {
		t.Fatalf("expected A/v1 in cart")
	}
	if !store.IsInCart("A", "") {
		t.Fatalf("empty variant should match any line of the product")
	}
	if store.IsInCart("A", "v2") || store.IsInCart("B", "") {
		t.Fatalf("unexpected membership")
	}
	item, ok := store.Get("A", "v1")
	if !ok || item.ID != "A:v1" {
		t.Fatalf("Get mismatch: %+v ok=%v", item, ok)
	}
}

// Invariants from the store's contract, checked over a mixed sequence
// of operations.
func TestAggregateInvariantsOverSequence(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemory(), nil)

	store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 2, Product: snapshot(100)})
	store.AddItem(ctx, AddInput{ProductID: "B", VariantID: "v", Quantity: 1, Product: snapshot(250)})
	store.AddItem(ctx, AddInput{ProductID: "A", Quantity: 1, Product: snapshot(100)})
	store.UpdateQuantity(ctx, "B:v", 4)
	store.RemoveItem(ctx, "does-not-exist")

	items := store.Items()
	seen := map[string]bool{}
	wantCount := 0
	var wantSubtotal int64
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate id %s", item.ID)
		}
		seen[item.ID] = true
		if item.Quantity < 1 {
			t.Fatalf("quantity below 1 for %s", item.ID)
		}
		wantCount += item.Quantity
		wantSubtotal += EffectiveUnitPrice(item) * int64(item.Quantity)
	}
	if store.ItemCount() != wantCount {
		t.Fatalf("ItemCount=%d want %d", store.ItemCount(), wantCount)
	}
	if store.Subtotal() != wantSubtotal {
		t.Fatalf("Subtotal=%d want %d", store.Subtotal(), wantSubtotal)
	}
	if store.IsEmpty() != (len(items) == 0) {
		t.Fatalf("IsEmpty inconsistent")
	}
}
